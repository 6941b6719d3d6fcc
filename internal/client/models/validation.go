package models

// CheckState is the state of a live uniqueness check.
type CheckState int

const (
	CheckEmpty CheckState = iota
	CheckChecking
	CheckAvailable
	CheckTaken
	CheckError
)

func (s CheckState) String() string {
	switch s {
	case CheckEmpty:
		return "empty"
	case CheckChecking:
		return "checking"
	case CheckAvailable:
		return "available"
	case CheckTaken:
		return "taken"
	case CheckError:
		return "error"
	}
	return "unknown"
}

// ValidationState is a check result together with the exact input it was
// computed for.
type ValidationState struct {
	State   CheckState
	Input   string
	Message string
}

// For reports whether the state describes value.
func (v ValidationState) For(value string) bool {
	return v.Input == value
}
