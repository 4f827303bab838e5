package smoke

import "errors"

var (
	// ErrUnhealthy is returned when /healthz does not answer 200.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrUnexpectedStatus is returned for any other non-200 answer.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrVerification is returned when the API answers are inconsistent.
	ErrVerification = errors.New("verification failed")
)
