package bus

import (
	"context"

	"github.com/yungbote/studyhours-backend/internal/realtime"
)

// Bus carries realtime messages between server instances.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.Message)) error
	Close() error
}

// Emitter publishes through a Bus, logging rather than returning failures.
type Emitter struct {
	Bus     Bus
	OnError func(err error)
}

func (e Emitter) Emit(ctx context.Context, msg realtime.Message) {
	if err := e.Bus.Publish(ctx, msg); err != nil && e.OnError != nil {
		e.OnError(err)
	}
}
