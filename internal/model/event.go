package model

// EventKind identifies what happened to the in-flight request
type EventKind string

const (
	EventStarted   EventKind = "started"
	EventProgress  EventKind = "progress"
	EventCompleted EventKind = "completed"
	EventFailed    EventKind = "failed"
	EventCancelled EventKind = "cancelled"
)

// IsTerminal returns true for the last event of a request
func (k EventKind) IsTerminal() bool {
	return k == EventCompleted || k == EventFailed || k == EventCancelled
}

// Event is delivered from the download service to the UI thread
type Event struct {
	RequestID       string
	Kind            EventKind
	Percent         float64 // set for EventProgress
	DownloadedBytes int64
	TotalBytes      int64
	Result          *Result // set for EventCompleted
	Err             error   // set for EventFailed
}
