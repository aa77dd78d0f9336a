package domain

import "errors"

var (
	// ErrSessionNotFound is returned when an exam session is unknown or was abandoned.
	ErrSessionNotFound = errors.New("exam session not found")
	// ErrFormNotFound indicates the exam form could not be loaded.
	ErrFormNotFound = errors.New("exam form not found")
	// ErrDeckNotFound indicates an unknown ethics deck.
	ErrDeckNotFound = errors.New("ethics deck not found")
	// ErrRunNotFound indicates an unknown ethics run.
	ErrRunNotFound = errors.New("ethics run not found")
	// ErrSprintNotFound indicates an unknown sprint.
	ErrSprintNotFound = errors.New("sprint not found")
	// ErrConversationNotFound indicates an unknown mentor conversation.
	ErrConversationNotFound = errors.New("conversation not found")
)
