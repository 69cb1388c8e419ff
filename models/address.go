package models

import "time"

// Address is owned by a user and referenced by orders. Orders additionally
// freeze a copy of the fields at checkout (see AddressSnapshot), so editing
// an address never rewrites what a past order shows.
type Address struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"index;not null" json:"user_id"`
	Recipient  string    `gorm:"not null" json:"recipient"`
	Country    string    `gorm:"not null" json:"country"`
	State      string    `json:"state"`
	City       string    `gorm:"not null" json:"city"`
	Street     string    `gorm:"not null" json:"street"`
	PostalCode string    `json:"postal_code"`
	IsShipping bool      `gorm:"default:true" json:"is_shipping"`
	IsBilling  bool      `gorm:"default:true" json:"is_billing"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AddressSnapshot is embedded into Order rows at checkout time.
type AddressSnapshot struct {
	Recipient  string `json:"recipient"`
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}

func (a Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		Recipient:  a.Recipient,
		Country:    a.Country,
		State:      a.State,
		City:       a.City,
		Street:     a.Street,
		PostalCode: a.PostalCode,
	}
}
