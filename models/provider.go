package models

import "time"

// Known service trades a provider can offer.
var ServiceTypes = []string{"Plumber", "Electrician", "Carpenter", "Mason", "Painter", "Gardener"}

// IsKnownServiceType reports whether the given trade is in the supported list.
func IsKnownServiceType(serviceType string) bool {
	for _, s := range ServiceTypes {
		if s == serviceType {
			return true
		}
	}
	return false
}

// BookedSlot is one committed (date, slot) pair in a provider's slot ledger.
// Entries are never removed automatically; a slot may be committed by an
// accepted job or pre-blocked directly by the provider.
type BookedSlot struct {
	Date string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Slot string `bson:"slot" json:"slot"` // forenoon or afternoon
}

// Provider represents a service professional ("mistri").
type Provider struct {
	ID           string       `bson:"id" json:"id"`
	Name         string       `bson:"name" json:"name"`
	Email        string       `bson:"email" json:"email"`
	PasswordHash string       `bson:"passwordHash" json:"-"`
	TokenHash    string       `bson:"tokenHash,omitempty" json:"-"`
	PhoneNumber  string       `bson:"phoneNumber" json:"phoneNumber"`
	ServiceTypes []string     `bson:"serviceTypes" json:"serviceTypes"`
	Area         string       `bson:"area" json:"area"`
	Price        float64      `bson:"price" json:"price"` // per-job asking price
	Booked       []BookedSlot `bson:"booked" json:"booked,omitempty"`
	Rating       float64      `bson:"rating" json:"rating"` // 0 = never rated
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updatedAt" json:"updatedAt"`
}
