package pub

import (
	"context"
	"empdir/internal/types"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const historyKeyTemplate = "%s:recent"

type redisPub struct {
	cli     redis.UniversalClient
	channel string
	history int
}

// NewRedis PUBLISHes notifications on channel. When history > 0 the latest
// history notifications are also kept, newest first, in the list "<channel>:recent".
func NewRedis(cli redis.UniversalClient, channel string, history int) *redisPub {
	return &redisPub{cli: cli, channel: channel, history: history}
}

func (r *redisPub) Notify(ctx context.Context, n types.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if r.history <= 0 {
		return r.cli.Publish(ctx, r.channel, payload).Err()
	}
	key := fmt.Sprintf(historyKeyTemplate, r.channel)
	_, err = r.cli.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Publish(ctx, r.channel, payload)
		p.LPush(ctx, key, payload)
		p.LTrim(ctx, key, 0, int64(r.history-1))
		return nil
	})
	return err
}

// Recent returns up to limit stored notifications, newest first.
func (r *redisPub) Recent(ctx context.Context, limit int) ([]types.Notification, error) {
	if limit <= 0 {
		return nil, nil
	}
	key := fmt.Sprintf(historyKeyTemplate, r.channel)
	out := r.cli.LRange(ctx, key, 0, int64(limit-1))
	if out.Err() != nil {
		return nil, out.Err()
	}
	ns := make([]types.Notification, 0, len(out.Val()))
	for _, raw := range out.Val() {
		var n types.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, fmt.Errorf("invalid notification in %s: %w", key, err)
		}
		ns = append(ns, n)
	}
	return ns, nil
}
