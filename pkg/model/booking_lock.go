package model

import "time"

// BookingLock is an advisory lock document preventing two concurrent booking
// creations for the same car from both passing the availability check. The
// lock key is derived from the car id; a TTL index on expires_at reaps locks
// abandoned by crashed requests.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
