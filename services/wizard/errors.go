package wizard

import (
	"fmt"

	"voyago/models"
	"voyago/utils"
)

// ErrSessionNotFound is returned when a session ID resolves to nothing,
// either because it never existed or because its TTL expired.
var ErrSessionNotFound = &utils.ServiceError{
	Code:    utils.CodeNotFound,
	Message: "booking session not found or expired",
}

// StepError reports an operation attempted before its preconditions were
// met. Redirect names the earliest step able to supply them, so the client
// can send the user back there instead of guessing from message text.
type StepError struct {
	Redirect models.WizardStep
	Reason   string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("wizard step not ready: %s (complete %q first)", e.Reason, e.Redirect)
}

func missingStep(redirect models.WizardStep, reason string) *StepError {
	return &StepError{Redirect: redirect, Reason: reason}
}
