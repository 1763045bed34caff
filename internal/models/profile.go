package models

// UserProfile holds the local operator profile
type UserProfile struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

// NewDefaultProfile returns the profile used before the user edits it
func NewDefaultProfile() *UserProfile {
	return &UserProfile{
		Name:  "Admin Local",
		Role:  "Content Manager",
		Email: "admin@wpmanager.app",
	}
}
