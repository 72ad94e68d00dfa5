package errors

import "fmt"

// Error type constants
const (
	ValidationError    = "VALIDATION_ERROR"
	DetectionFailed    = "DETECTION_FAILED"
	CommandFailed      = "COMMAND_FAILED"
	PreconditionFailed = "PRECONDITION_FAILED"
	Fatal              = "FATAL"
)

// ProvisionError is a structured error carrying the phase it arose in and a
// remediation hint for the operator.
type ProvisionError struct {
	Type    string `json:"type"`
	Phase   string `json:"phase,omitempty"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

func (e *ProvisionError) Error() string {
	if e.Phase != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.Phase, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func NewValidationError(msg, hint string) *ProvisionError {
	return &ProvisionError{Type: ValidationError, Message: msg, Hint: hint}
}

func NewCommandError(phase, msg string) *ProvisionError {
	return &ProvisionError{Type: CommandFailed, Phase: phase, Message: msg}
}

func NewPreconditionError(phase, msg, hint string) *ProvisionError {
	return &ProvisionError{Type: PreconditionFailed, Phase: phase, Message: msg, Hint: hint}
}
