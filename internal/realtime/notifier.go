package realtime

import (
	"context"

	"github.com/yungbote/studyhours-backend/internal/platform/logger"
)

// Emitter hands a message to whatever fans it out.
type Emitter interface {
	Emit(ctx context.Context, msg Message)
}

type HubEmitter struct{ Hub *Hub }

func (e HubEmitter) Emit(_ context.Context, msg Message) {
	e.Hub.Broadcast(msg)
}

// Notifier tells a user's listeners that their study data moved.
type Notifier interface {
	StateChanged(ctx context.Context, userID, op string)
	PersistFailed(ctx context.Context, userID, op string, err error)
	TimerChanged(ctx context.Context, userID string, state any)
	SessionSaved(ctx context.Context, userID string, session any)
}

type notifier struct {
	emit Emitter
	log  *logger.Logger
}

func NewNotifier(emit Emitter, baseLog *logger.Logger) Notifier {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	return &notifier{emit: emit, log: baseLog.With("component", "Notifier")}
}

func (n *notifier) send(ctx context.Context, userID string, event Event, data any) {
	if n == nil || n.emit == nil || userID == "" {
		return
	}
	n.emit.Emit(ctx, Message{Channel: userID, Event: event, Data: data})
}

func (n *notifier) StateChanged(ctx context.Context, userID, op string) {
	n.send(ctx, userID, EventStateChanged, map[string]any{"op": op})
}

func (n *notifier) PersistFailed(ctx context.Context, userID, op string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	n.send(ctx, userID, EventPersistFailed, map[string]any{"op": op, "error": msg})
}

func (n *notifier) TimerChanged(ctx context.Context, userID string, state any) {
	n.send(ctx, userID, EventTimerChanged, map[string]any{"timer": state})
}

func (n *notifier) SessionSaved(ctx context.Context, userID string, session any) {
	n.send(ctx, userID, EventSessionSaved, map[string]any{"session": session})
}

// Nop discards every notification.
type Nop struct{}

func (Nop) StateChanged(context.Context, string, string)         {}
func (Nop) PersistFailed(context.Context, string, string, error) {}
func (Nop) TimerChanged(context.Context, string, any)            {}
func (Nop) SessionSaved(context.Context, string, any)            {}
