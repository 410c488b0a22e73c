package pipeline

import (
	"context"
	"time"
)

// ProgressEvent is one progress beat emitted while a run advances.
type ProgressEvent struct {
	Stage     string    `json:"stage"`
	Message   string    `json:"message"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// Notifier receives progress beats. Implementations must not block the
// pipeline; delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, event ProgressEvent)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, ProgressEvent) {}
