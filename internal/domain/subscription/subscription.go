// Package subscription contains membership profiles submitted through the
// partner bot, keyed by the same Telegram identity as the sale users.
package subscription

import (
	"fmt"
	"time"
)

// Profile carries the optional membership fields. All of them may be empty;
// only the Telegram identity is mandatory.
type Profile struct {
	TelegramUsername  string
	PhoneNumber       string
	DateOfBirth       *time.Time
	HomeAddress       string
	CityOfResidency   string
	EmailAddress      string
	Occupation        string
	Industry          string
	Indicative        string
	JoiningReasons    string
	PersonalInterests string
}

// Subscription is a member profile. One per Telegram identity.
type Subscription struct {
	telegramID string
	profile    Profile
	createdAt  time.Time
	updatedAt  time.Time
}

// New creates a subscription for the given Telegram identity.
func New(telegramID string, profile Profile) (*Subscription, error) {
	if telegramID == "" {
		return nil, fmt.Errorf("telegram ID is required")
	}

	now := time.Now().UTC()
	return &Subscription{
		telegramID: telegramID,
		profile:    profile,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func (s *Subscription) TelegramID() string   { return s.telegramID }
func (s *Subscription) Profile() Profile     { return s.profile }
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time { return s.updatedAt }

// UpdateProfile replaces the stored profile fields.
func (s *Subscription) UpdateProfile(profile Profile) {
	s.profile = profile
	s.updatedAt = time.Now().UTC()
}

// ReconstructParams carries persisted state back into the entity.
type ReconstructParams struct {
	TelegramID string
	Profile    Profile
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Reconstruct rebuilds a Subscription from persistence without validation.
func Reconstruct(p ReconstructParams) *Subscription {
	return &Subscription{
		telegramID: p.TelegramID,
		profile:    p.Profile,
		createdAt:  p.CreatedAt,
		updatedAt:  p.UpdatedAt,
	}
}
