package ports

import (
	"context"
	"empdir/internal/types"
)

type Notifier interface {
	Notify(ctx context.Context, n types.Notification) error
}

// NotificationHistory returns stored notifications, newest first.
type NotificationHistory interface {
	Recent(ctx context.Context, limit int) ([]types.Notification, error)
}
