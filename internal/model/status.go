package model

// VisaStatus is the lifecycle state of a visa application
type VisaStatus string

const (
	VisaNotStarted VisaStatus = "not_started"
	VisaPreparing  VisaStatus = "preparing"
	VisaSubmitted  VisaStatus = "submitted"
	VisaApproved   VisaStatus = "approved"
	VisaRejected   VisaStatus = "rejected"
)

// StatusIcon returns the glyph shown next to a visa status
func (s VisaStatus) StatusIcon() string {
	switch s {
	case VisaPreparing:
		return "●"
	case VisaSubmitted:
		return "◐"
	case VisaApproved:
		return "✓"
	case VisaRejected:
		return "✗"
	default:
		return "○"
	}
}

// ExtensionCategories maps category keys to their display names.
var ExtensionCategories = map[string]string{
	"property_search": "Property Search Tools",
	"job_search":      "Job Search Assistants",
	"immigration":     "Immigration Tracking",
	"productivity":    "Productivity Tools",
	"relocation":      "Relocation Helpers",
}

// Icon returns the completion glyph for a milestone
func (m Milestone) Icon() string {
	if m.Completed {
		return "✓"
	}
	return "○"
}
