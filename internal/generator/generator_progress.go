package generator

// ProgressCallback is called during batch conversion to report progress
type ProgressCallback func(event ProgressEvent)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Type    ProgressEventType
	Path    string
	Message string
	Index   int
	Total   int
	Error   error
}

// ProgressEventType identifies the type of progress event
type ProgressEventType int

const (
	EventReadStart ProgressEventType = iota
	EventReadComplete
	EventConvertComplete
	EventRenderComplete
	EventWriteComplete
	EventFileComplete
	EventError
)

func (t ProgressEventType) String() string {
	switch t {
	case EventReadStart:
		return "read-start"
	case EventReadComplete:
		return "read"
	case EventConvertComplete:
		return "converted"
	case EventRenderComplete:
		return "rendered"
	case EventWriteComplete:
		return "written"
	case EventFileComplete:
		return "done"
	case EventError:
		return "error"
	}
	return "unknown"
}
