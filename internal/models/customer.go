package models

import "time"

// Customer is a studio member with a prepaid class balance.
type Customer struct {
	ID               string    `db:"id" json:"id"`
	FirstName        string    `db:"first_name" json:"first_name"`
	LastName         string    `db:"last_name" json:"last_name"`
	Address          string    `db:"address" json:"address"`
	Phone            string    `db:"phone" json:"phone"`
	Email            string    `db:"email" json:"email"`
	PreferredContact string    `db:"preferred_contact" json:"preferred_contact"`
	Senior           bool      `db:"senior" json:"senior"`
	ClassBalance     int       `db:"class_balance" json:"class_balance"`
	NormName         string    `db:"norm_name" json:"-"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// ContactDestination resolves the delivery address for the preferred channel.
func (c *Customer) ContactDestination() string {
	if c.PreferredContact == ContactPhone {
		return c.Phone
	}
	return c.Email
}

// CustomerRef is the projection returned by the id/name listing endpoint.
type CustomerRef struct {
	ID        string `db:"id" json:"id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}
