package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/rs/zerolog/log"

	"billboard-hub-backend/internal/model"
)

// Kind names a booking change worth telling someone about.
type Kind string

const (
	// KindBooked tells an owner a customer booked their listing.
	KindBooked Kind = "booked"
	// KindReleased tells an owner a customer cancelled their booking.
	KindReleased Kind = "released"
	// KindFreed tells a customer the owner made their booked listing available.
	KindFreed Kind = "freed"
)

// Event is one notification job.
type Event struct {
	Kind        Kind
	BillboardID string
	Title       string
	RecipientID string
}

func (e Event) message() string {
	switch e.Kind {
	case KindBooked:
		return fmt.Sprintf("%s has been booked.", e.Title)
	case KindReleased:
		return fmt.Sprintf("The booking for %s was cancelled.", e.Title)
	case KindFreed:
		return fmt.Sprintf("%s is available again; your booking was cleared by the owner.", e.Title)
	default:
		return e.Title
	}
}

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan Event
	subs    *SubscriptionStore
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, subs *SubscriptionStore, webpushOptions *webpush.Options) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Event, size*16),
		subs:    subs,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// WithSender replaces the push sender.
func (wp *WorkerPool) WithSender(sender NotificationSender) *WorkerPool {
	wp.sender = sender
	return wp
}

// Start launches the worker goroutines. They stop when ctx is cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Debug().Int("worker", id).Msg("notification worker started")
	for {
		select {
		case ev := <-wp.jobs:
			wp.deliver(ctx, ev)
		case <-ctx.Done():
			log.Debug().Int("worker", id).Msg("notification worker shutting down")
			return
		}
	}
}

// Notify queues ev. When the queue is full the event is dropped so callers
// never block on push delivery.
func (wp *WorkerPool) Notify(ev Event) {
	if ev.RecipientID == "" {
		return
	}
	select {
	case wp.jobs <- ev:
	default:
		log.Warn().Str("billboard", ev.BillboardID).Str("kind", string(ev.Kind)).Msg("notification queue full, dropping event")
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Event {
	return wp.jobs
}

type pushPayload struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	BillboardID string `json:"billboardId"`
	Kind        Kind   `json:"kind"`
}

// deliver sends ev to every subscription of its recipient.
func (wp *WorkerPool) deliver(ctx context.Context, ev Event) {
	subscriptions := wp.subs.ForActor(ctx, ev.RecipientID)
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(pushPayload{
		Title:       "BillboardHub",
		Body:        ev.message(),
		BillboardID: ev.BillboardID,
		Kind:        ev.Kind,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to encode push payload")
		return
	}

	log.Info().Int("subscriptions", len(subscriptions)).Str("recipient", ev.RecipientID).Str("kind", string(ev.Kind)).Msg("sending push notifications")
	for _, sub := range subscriptions {
		wp.send(ctx, sub, payload)
	}
}

// send sends a single web push notification.
func (wp *WorkerPool) send(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Warn().Err(err).Str("endpoint", sub.Endpoint).Msg("error sending notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Info().Str("endpoint", sub.Endpoint).Msg("subscription expired, deleting")
		if err := wp.subs.Delete(ctx, sub.Endpoint); err != nil {
			log.Warn().Err(err).Str("endpoint", sub.Endpoint).Msg("failed to delete expired subscription")
		}
	}
}
