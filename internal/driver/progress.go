package driver

// Stage identifies which phase of a single file's analysis an Event
// describes.
type Stage uint8

const (
	StageParse Stage = iota
	StageLint
)

// Status is the lifecycle state of a file within a directory-wide run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports progress for a single file during AnalyzeDir. File is
// empty for events that describe the run as a whole rather than one file.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// ProgressSink receives Events as AnalyzeDir works through a directory.
type ProgressSink interface {
	Send(Event)
}

// ChannelSink forwards Events onto a channel. Send blocks while the
// channel's buffer is full; a nil Ch discards every Event.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) Send(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}
