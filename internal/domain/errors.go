package domain

import "errors"

var (
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrMalformedRecord   = errors.New("malformed ledger record")
	ErrSourceUnavailable = errors.New("ledger source unavailable")
	ErrSinkUnavailable   = errors.New("activity flags sink unavailable")
	ErrArtifactNotFound  = errors.New("artifact not found")
	ErrArtifactCorrupt   = errors.New("artifact checksum mismatch")
	ErrInvalidTransition = errors.New("invalid run state transition")
)
