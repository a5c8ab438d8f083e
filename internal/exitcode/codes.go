package exitcode

// Exit codes for the salesmover process.
// Supervisors (systemd, container runtimes) can use these to decide
// whether a restart is worthwhile.
const (
	// Success - scheduler loop ended cleanly (context cancelled)
	Success = 0

	// ConfigError - missing or invalid configuration
	// Don't retry: fix the config first
	ConfigError = 1

	// StorageError - could not reach or bootstrap the object-storage bucket
	// Retry with backoff
	StorageError = 2

	// NotifyError - could not bootstrap the notification topic/subscription
	// Check logs, may need manual intervention
	NotifyError = 3
)
