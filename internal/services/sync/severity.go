package sync

// Severity controls how a sync failure is surfaced. Background polls
// run silent: the project still transitions to the error state, but no
// alert is raised toward the UI.
type Severity int

const (
	SeveritySilent Severity = iota
	SeverityAlert
)

func (s Severity) String() string {
	switch s {
	case SeverityAlert:
		return "alert"
	default:
		return "silent"
	}
}
