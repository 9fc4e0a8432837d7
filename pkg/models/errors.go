package models

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidInput    = errors.New("missing date or time")
	ErrPastSchedule    = errors.New("selected time is in the past")
	ErrGatewayFailure  = errors.New("calendar gateway failure")
	ErrActionInFlight  = errors.New("request already in flight")
)
