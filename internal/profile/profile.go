package profile

import (
	"time"

	"github.com/wonny/jyotish/backend/internal/contracts"
)

// Profile is one person's stored natal data. BirthTime is nullable: many
// users only know the date, and the resolver then substitutes solar noon.
type Profile struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	BirthDate time.Time          `json:"birth_date"`
	BirthTime *time.Time         `json:"birth_time,omitempty"`
	Location  contracts.Location `json:"location"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// HasBirthTime reports whether the exact time of birth is known
func (p *Profile) HasBirthTime() bool {
	return p.BirthTime != nil
}

// BirthInstant returns the instant to resolve the natal chart at and whether
// it carries a real clock time
func (p *Profile) BirthInstant() (time.Time, bool) {
	if p.BirthTime != nil {
		return *p.BirthTime, true
	}
	return p.BirthDate, false
}
