package chat

import apperrors "github.com/yanqian/faq-widget/pkg/errors"

var (
	// ErrEmptyMessage is returned for blank submissions; nothing is appended.
	ErrEmptyMessage = apperrors.New(apperrors.CodeInvalidInput, "message cannot be empty")
	// ErrSessionClosed is returned once a session has been discarded.
	ErrSessionClosed = apperrors.New(apperrors.CodeSessionClosed, "session has been discarded")
	// ErrSessionNotFound is returned for unknown session ids.
	ErrSessionNotFound = apperrors.New(apperrors.CodeSessionNotFound, "session not found")
	// ErrSessionLimit is returned when the manager is at capacity.
	ErrSessionLimit = apperrors.New(apperrors.CodeSessionLimit, "too many active sessions")
)
