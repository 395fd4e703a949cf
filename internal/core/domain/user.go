package domain

import "time"

// User is a registered shopper. GotBonus records that the one-time welcome
// bonus was claimed; the wallet ledger itself does not enforce idempotency of
// the grant.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Age          int       `json:"age"`
	Address      string    `json:"address"`
	PasswordHash string    `json:"-"`
	GotBonus     bool      `json:"got_bonus"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
