// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/metrics"
)

// Emitter is what request handlers depend on.
type Emitter interface {
	Emit(ctx context.Context, a *Activity)
}

// BusConfig configures the in-process bus.
type BusConfig struct {
	// BufferSize is the per-subscriber channel buffer.
	BufferSize int64

	// CloseTimeout bounds how long Close waits for in-flight handlers.
	CloseTimeout time.Duration

	RetryMaxRetries      int
	RetryInitialInterval time.Duration
}

// DefaultBusConfig returns the production defaults.
func DefaultBusConfig() BusConfig {
	return BusConfig{
		BufferSize:           256,
		CloseTimeout:         10 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
	}
}

// Handler consumes one activity. Returning an error triggers the retry
// middleware.
type Handler func(ctx context.Context, a *Activity) error

// ErrBusClosed is returned by Run after Close.
var ErrBusClosed = errors.New("activity bus closed")

// Bus owns the gochannel pub/sub and the router consuming it. A Watermill
// router runs only once, so every Run after the first gets a fresh router
// and subscription on the same pub/sub. That lets the supervisor restart
// the consumer.
type Bus struct {
	pubsub   *gochannel.GoChannel
	logger   watermill.LoggerAdapter
	cfg      BusConfig
	handlers []Handler

	mu     sync.Mutex
	router *message.Router // the router the next or current Run uses
	active bool
	closed bool
}

// NewBus creates the bus and registers the activity log handler plus any
// extra handlers. Call Run to start consuming.
func NewBus(cfg BusConfig, extra ...Handler) (*Bus, error) {
	logger := watermill.NewSlogLogger(logging.NewSlogLogger())

	b := &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, logger),
		logger:   logger,
		cfg:      cfg,
		handlers: append([]Handler{LogActivity}, extra...),
	}
	router, err := b.newRouter()
	if err != nil {
		return nil, err
	}
	b.router = router
	return b, nil
}

func (b *Bus) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: b.cfg.CloseTimeout}, b.logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      b.cfg.RetryMaxRetries,
		InitialInterval: b.cfg.RetryInitialInterval,
		Logger:          b.logger,
	}
	router.AddMiddleware(retry.Middleware)

	router.AddConsumerHandler("activity-consumer", Topic, b.pubsub, b.consume)
	return router, nil
}

func (b *Bus) consume(msg *message.Message) error {
	a, err := unmarshalActivity(msg.Payload)
	if err != nil {
		// A malformed payload will not improve on retry.
		logging.Error().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed activity")
		return nil
	}
	for _, h := range b.handlers {
		if err := h(msg.Context(), a); err != nil {
			return err
		}
	}
	return nil
}

// Publish sends the activity to the topic.
func (b *Bus) Publish(a *Activity) error {
	data, err := a.marshal()
	if err != nil {
		return err
	}
	msg := message.NewMessage(a.ID, data)
	msg.Metadata.Set("type", string(a.Type))
	if a.RequestID != "" {
		msg.Metadata.Set("request_id", a.RequestID)
	}
	if err := b.pubsub.Publish(Topic, msg); err != nil {
		return fmt.Errorf("publish activity: %w", err)
	}
	return nil
}

// Emit publishes the activity, logging and counting failures instead of
// returning them.
func (b *Bus) Emit(ctx context.Context, a *Activity) {
	if a.RequestID == "" {
		a.RequestID = logging.RequestIDFromContext(ctx)
	}
	if err := b.Publish(a); err != nil {
		metrics.ActivityPublishErrors.WithLabelValues(string(a.Type)).Inc()
		logging.Ctx(ctx).Warn().Err(err).Str("activity", string(a.Type)).Msg("Failed to publish activity")
	}
}

// Subscribe returns a raw subscription to the topic, independent of the
// router.
func (b *Bus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, Topic)
}

// Run starts a router and blocks until ctx is canceled or the router
// stops. It may be called again after it returns.
func (b *Bus) Run(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	router := b.router
	b.active = true
	b.mu.Unlock()

	runErr := router.Run(ctx)
	// No-op after a normal shutdown; stops the handlers when Run failed.
	closeErr := router.Close()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = false
	if b.closed {
		return runErr
	}
	next, err := b.newRouter()
	if err != nil {
		return errors.Join(runErr, err)
	}
	b.router = next
	if runErr == nil && closeErr != nil {
		return closeErr
	}
	return runErr
}

// Running is closed once the current router is consuming.
func (b *Bus) Running() chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.router.Running()
}

// Close stops a running router and closes the pub/sub. Publishing after
// Close fails.
func (b *Bus) Close() error {
	b.mu.Lock()
	b.closed = true
	router, active := b.router, b.active
	b.mu.Unlock()

	var rerr error
	if active {
		rerr = router.Close()
	}
	return errors.Join(rerr, b.pubsub.Close())
}

// LogActivity logs the activity and counts it by type.
func LogActivity(_ context.Context, a *Activity) error {
	metrics.ActivityEventsTotal.WithLabelValues(string(a.Type)).Inc()
	logging.Info().
		Str("activity_id", a.ID).
		Str("activity", string(a.Type)).
		Int64("user_id", a.UserID).
		Int64("target_id", a.TargetID).
		Str("request_id", a.RequestID).
		Time("occurred_at", a.OccurredAt).
		Msg("User activity")
	return nil
}

// Discard is an Emitter that drops every activity.
type Discard struct{}

// Emit implements Emitter.
func (Discard) Emit(context.Context, *Activity) {}
