package services

import "fmt"

// NoticeError is a no-op guard: the command would not change anything, so it
// was skipped before any repository write. Handlers surface it as a notice,
// not a failure.
type NoticeError struct {
	Message string
}

func (e *NoticeError) Error() string {
	return e.Message
}

// TransitionError rejects an invalid state transition before any repository
// write.
type TransitionError struct {
	Message string
}

func (e *TransitionError) Error() string {
	return e.Message
}

// PartialCompletionError reports a saga that completed its first step but
// failed its second: the proposal exists, the source request was not
// advanced. Callers must be able to reconcile, so the created entity rides
// along.
type PartialCompletionError struct {
	ProposalID string
	Err        error
}

func (e *PartialCompletionError) Error() string {
	return fmt.Sprintf("proposal %s created but source request was not updated: %v", e.ProposalID, e.Err)
}

func (e *PartialCompletionError) Unwrap() error {
	return e.Err
}
