package common

import "github.com/ternarybob/banner"

// PrintBanner displays the startup banner
func PrintBanner(version string) {
	banner.PrintSimple("WP AI Studio", version)
}
