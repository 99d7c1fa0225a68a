package model

// TaskStatus represents the observable state of the download window
type TaskStatus string

const (
	// TaskStatusIdle means no request has been made or the last one was rejected locally
	TaskStatusIdle TaskStatus = "Idle"

	// TaskStatusRequesting means a request was accepted and the engine is starting
	TaskStatusRequesting TaskStatus = "Requesting"

	// TaskStatusDownloading means the engine reported transfer progress
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusDone means the download finished successfully
	TaskStatusDone TaskStatus = "Done"

	// TaskStatusFailed means the engine returned an error
	TaskStatusFailed TaskStatus = "Failed"

	// TaskStatusCancelled means the user aborted the download
	TaskStatusCancelled TaskStatus = "Cancelled"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true while a request is in flight
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusRequesting || ts == TaskStatusDownloading
}

// IsFinished returns true if the last request reached a terminal state
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusDone || ts == TaskStatusFailed || ts == TaskStatusCancelled
}
