package realtime

type Event string

const (
	// EventStateChanged follows every persisted study mutation.
	EventStateChanged Event = "StudyStateChanged"
	// EventPersistFailed is sent when a mutation was applied but not saved.
	EventPersistFailed Event = "StudyPersistFailed"
	EventTimerChanged  Event = "TimerChanged"
	EventSessionSaved  Event = "SessionSaved"
)

// Message is the unit fanned out to subscribers. Channel is the user id.
type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}
