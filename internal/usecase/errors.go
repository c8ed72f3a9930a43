package usecase

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrValidation       = errors.New("validation failed")
	ErrDuplicate        = errors.New("already exists")
	ErrAlreadyProcessed = errors.New("already processed")
	ErrConflict         = errors.New("conflicting concurrent update")
	ErrInternal         = errors.New("internal error")

	ErrJDSpecNotFound     = errors.New("JD spec not found")
	ErrCurrentJDNotFound  = errors.New("current JD spec not found")
	ErrPastJDNotFound     = errors.New("past JD spec not found")
	ErrBidNotFound        = errors.New("bid not found")
	ErrCurrentBidNotFound = errors.New("current bid not found")
	ErrPastBidNotFound    = errors.New("past bid not found")
	ErrResumeNotFound     = errors.New("resume not found")
	ErrSkillNotFound      = errors.New("canonical skill not found")
	ErrQueueItemNotFound  = errors.New("review queue item not found")
)
