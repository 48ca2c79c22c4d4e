package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"example.com/dice-duel/internal/game"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// relayMessage is what goes over the Redis channel. Origin identifies the
// process that owns the table; Seq is assigned at enqueue time and lets the
// subscriber drop a message that was published twice after a retry.
type relayMessage struct {
	Origin string          `json:"origin"`
	Seq    uint64          `json:"seq"`
	Event  json.RawMessage `json:"event"`
}

// RedisRelay fans table events out through a Redis channel to the local Hub.
//
// Publish never touches the network: it appends to an in-memory FIFO that a
// single goroutine drains in order, retrying the head until Redis accepts it.
// The subscriber only forwards messages carrying this relay's origin, so two
// processes sharing a channel never see each other's tables.
type RedisRelay struct {
	rdb       *redis.Client
	channel   string
	origin    string
	hub       *Hub
	timeout   time.Duration
	retryWait time.Duration
	log       *slog.Logger

	mu    sync.Mutex
	queue [][]byte
	seq   uint64
	wake  chan struct{}

	ready chan struct{}
}

func NewRedisRelay(rdb *redis.Client, channel, origin string, hub *Hub, log *slog.Logger) *RedisRelay {
	if log == nil {
		log = slog.Default()
	}
	return &RedisRelay{
		rdb:       rdb,
		channel:   channel,
		origin:    origin,
		hub:       hub,
		timeout:   2 * time.Second,
		retryWait: 250 * time.Millisecond,
		log:       log.With("origin", origin),
		wake:      make(chan struct{}, 1),
		ready:     make(chan struct{}),
	}
}

// Publish queues ev for delivery. Events published before Run has subscribed
// are held until it has.
func (r *RedisRelay) Publish(ev game.Event) {
	b, err := encodeEvent(ev)
	if err != nil {
		r.log.Error("encode event", "event", ev.Type, "err", err)
		return
	}

	r.mu.Lock()
	r.seq++
	msg, err := json.Marshal(relayMessage{Origin: r.origin, Seq: r.seq, Event: b})
	if err == nil {
		r.queue = append(r.queue, msg)
	}
	r.mu.Unlock()
	if err != nil {
		r.log.Error("encode relay message", "event", ev.Type, "err", err)
		return
	}

	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Pending reports how many events are waiting to reach Redis.
func (r *RedisRelay) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

// Ready is closed once the subscription is confirmed.
func (r *RedisRelay) Ready() <-chan struct{} {
	return r.ready
}

func (r *RedisRelay) IsReady() bool {
	select {
	case <-r.ready:
		return true
	default:
		return false
	}
}

// Run subscribes to the channel, then publishes queued events and forwards
// incoming ones until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe %s: %w", r.channel, err)
	}
	close(r.ready)
	r.log.Info("redis relay subscribed", "channel", r.channel)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.forward(gctx, sub.Channel()) })
	g.Go(func() error { return r.drain(gctx) })
	return g.Wait()
}

func (r *RedisRelay) forward(ctx context.Context, ch <-chan *redis.Message) error {
	var last uint64
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var m relayMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				r.log.Warn("dropping malformed relay message", "err", err)
				continue
			}
			if m.Origin != r.origin || m.Seq <= last {
				continue
			}
			last = m.Seq
			r.hub.broadcast(m.Event)
		}
	}
}

func (r *RedisRelay) drain(ctx context.Context) error {
	for {
		r.mu.Lock()
		var head []byte
		if len(r.queue) > 0 {
			head = r.queue[0]
		}
		r.mu.Unlock()

		if head == nil {
			select {
			case <-ctx.Done():
				return nil
			case <-r.wake:
				continue
			}
		}

		if err := r.publish(ctx, head); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			r.log.Warn("redis publish failed, retrying", "pending", r.Pending(), "err", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(r.retryWait):
			}
			continue
		}

		r.mu.Lock()
		r.queue[0] = nil
		r.queue = r.queue[1:]
		r.mu.Unlock()
	}
}

func (r *RedisRelay) publish(ctx context.Context, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	err := r.rdb.Publish(ctx, r.channel, msg).Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("publish timed out after %s: %w", r.timeout, err)
	}
	return err
}
