package models

import "time"

// User is the delivery driver signed in on this device.
// It is the only record persisted locally, serialized as JSON.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	DeliveryCode string    `json:"deliveryCode"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	// SessionToken is the signed session issued at login; a stored record
	// whose token no longer verifies is discarded on restore.
	SessionToken string `json:"sessionToken,omitempty"`
}
