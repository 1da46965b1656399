package service

import "errors"

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrNotLinked       = errors.New("member is not linked to a shooter")
	ErrSessionNotFound = errors.New("session not found")
	ErrNoShots         = errors.New("no shots recorded for session")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrStorageFailure  = errors.New("storage failure")
)
