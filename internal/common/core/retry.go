package core

// RetryMode selects how the Jenkins client handles transient upstream
// failures (network errors and 5xx responses).
type RetryMode int

const (
	// None fails immediately.
	None RetryMode = iota
	// Backoff retries with exponential backoff until the configured
	// maximum elapsed time.
	Backoff
)
