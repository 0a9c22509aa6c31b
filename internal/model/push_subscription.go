package model

import "time"

// PushSubscription holds the information for a browser push subscription
// registered by an actor.
type PushSubscription struct {
	Endpoint  string    `json:"endpoint"`
	P256DH    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	ActorID   string    `json:"actorId"`
	CreatedAt time.Time `json:"createdAt"`
}
