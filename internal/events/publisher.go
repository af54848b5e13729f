// Package events publishes account and product domain events.
package events

import (
	"context"
	"time"
)

const (
	TopicAccounts = "account_events"
	TopicProducts = "product_events"

	TypeAccountRegistered = "account_registered"
	TypeAccountUpdated    = "account_updated"
	TypeAccountLoggedIn   = "account_logged_in"
	TypeProductCreated    = "product_created"
	TypeProductUpdated    = "product_updated"
)

const PublishTimeout = 5 * time.Second

type Event struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, topic, key string, ev Event) error
	Close() error
}

// Nop discards every event. Used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, string, Event) error { return nil }
func (Nop) Close() error { return nil }
