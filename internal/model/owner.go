package model

import "time"

// Owner is the single local owner guarding the API with a passphrase.
type Owner struct {
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
