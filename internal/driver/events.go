package driver

// Status describes where a file is in its processing lifecycle.
type Status uint8

const (
	StatusQueued Status = iota
	StatusRewrapping
	StatusClean
	StatusModified
	StatusCached
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusRewrapping:
		return "rewrapping"
	case StatusClean:
		return "clean"
	case StatusModified:
		return "modified"
	case StatusCached:
		return "cached"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Event reports a per-file status change during a run.
type Event struct {
	Path   string
	Status Status
}

// Sink receives progress events. Implementations must be safe for
// concurrent use; the driver emits from multiple workers.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	s.Ch <- evt
}

func (o Options) emit(path string, status Status) {
	if o.Progress != nil {
		o.Progress.OnEvent(Event{Path: path, Status: status})
	}
}
