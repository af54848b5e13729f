package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/pkg/logging"
)

// publish sends ev and only logs a failure; events never fail a request.
func publish(ctx context.Context, p events.Publisher, topic, key, typ string, data map[string]any) {
	if p == nil {
		return
	}
	pctx, cancel := context.WithTimeout(ctx, events.PublishTimeout)
	defer cancel()

	ev := events.Event{Type: typ, OccurredAt: time.Now().UTC(), Data: data}
	if err := p.Publish(pctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Error("event_publish_error", "topic", topic, "type", typ, "error", err)
	}
}
