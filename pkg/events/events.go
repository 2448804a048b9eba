// Package events publishes booking lifecycle events to Kafka. Publishing is
// best-effort: a broker outage must never fail the booking operation that
// triggered the event.
package events

import (
	"context"
	"time"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is the payload published for every booking mutation. Key
// fields mirror the persisted booking so downstream consumers need no
// read-back.
type BookingEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	CarID      string    `json:"car_id"`
	UserID     string    `json:"user_id"`
	OwnerID    string    `json:"owner_id"`
	Status     string    `json:"status"`
	Price      float64   `json:"price"`
	PickupDate time.Time `json:"pickup_date"`
	ReturnDate time.Time `json:"return_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// NopPublisher is used when no Kafka brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }
