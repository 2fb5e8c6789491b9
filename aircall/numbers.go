package aircall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Number represents a phone line owned by the company.
type Number struct {
	ID                     int64           `json:"id"`
	DirectLink             string          `json:"direct_link,omitempty"`
	Name                   string          `json:"name,omitempty"`
	Digits                 string          `json:"digits,omitempty"`
	Country                string          `json:"country,omitempty"`
	TimeZone               string          `json:"time_zone,omitempty"`
	Open                   bool            `json:"open,omitempty"`
	AvailabilityStatus     string          `json:"availability_status,omitempty"`
	IsIVR                  bool            `json:"is_ivr,omitempty"`
	LiveRecordingActivated bool            `json:"live_recording_activated,omitempty"`
	Priority               int             `json:"priority,omitempty"`
	Users                  []User          `json:"users,omitempty"`
	Messages               *NumberMessages `json:"messages,omitempty"`
}

func (n *Number) validate() error {
	if n.ID == 0 {
		return errors.New("number is missing required field id")
	}
	return nil
}

// NumberMessages holds the audio messages configured on a line.
type NumberMessages struct {
	Welcome        string `json:"welcome,omitempty"`
	Waiting        string `json:"waiting,omitempty"`
	RingingTone    string `json:"ringing_tone,omitempty"`
	UnansweredCall string `json:"unanswered_call,omitempty"`
	AfterHours     string `json:"after_hours,omitempty"`
	IVR            string `json:"ivr,omitempty"`
	Voicemail      string `json:"voicemail,omitempty"`
	Closed         string `json:"closed,omitempty"`
	CallbackLater  string `json:"callback_later,omitempty"`
}

// NumberUpdate carries the mutable fields of a number.
type NumberUpdate struct {
	Name     string `json:"name,omitempty"`
	Priority *int   `json:"priority,omitempty"`
}

// NumbersService exposes the number endpoints.
type NumbersService struct {
	client *Client
}

// Get retrieves a single number by ID.
func (s *NumbersService) Get(ctx context.Context, id int64) (*Number, error) {
	return fetchOne[Number](ctx, s.client, http.MethodGet, fmt.Sprintf("numbers/%d", id), nil, nil, "number")
}

// List returns a lazy iterator over all numbers.
func (s *NumbersService) List() *Iterator[Number] {
	query := withDefaultPageSize(url.Values{}, s.client.pageSize)
	return newIterator[Number](s.client, "numbers", "numbers", query)
}

// Update modifies a number's settings.
func (s *NumbersService) Update(ctx context.Context, id int64, update *NumberUpdate) (*Number, error) {
	if update == nil {
		return nil, newValidationError("number update is required")
	}
	return fetchOne[Number](ctx, s.client, http.MethodPut, fmt.Sprintf("numbers/%d", id), nil, update, "number")
}
