package arm

import "strings"

const (
	// LabelArm is shown while the subsystem is disarmed.
	LabelArm = "Arm"
	// LabelDisarm is shown while the subsystem is armed.
	LabelDisarm = "Disarm"

	// DefaultControlID identifies the arm/disarm control on the operator page.
	DefaultControlID = "armDisarmButton"

	// SetArmedPath is the endpoint path receiving arm notifications.
	SetArmedPath = "/set_armed"
	// QueryParam is the query parameter carrying the armed flag.
	QueryParam = "armed"
)

// Label returns the text the control displays for the given state.
func Label(armed bool) string {
	if armed {
		return LabelDisarm
	}

	return LabelArm
}

// FormatArmed renders the armed flag the way it travels in the query string.
func FormatArmed(armed bool) string {
	if armed {
		return "true"
	}

	return "false"
}

// ParseArmed reads the armed query value. Only "true" (any case) arms;
// everything else, including an empty or padded value, means disarmed.
func ParseArmed(value string) bool {
	return strings.EqualFold(value, "true")
}
