package aircall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// User represents an Aircall agent.
type User struct {
	ID                 int64    `json:"id"`
	DirectLink         string   `json:"direct_link,omitempty"`
	Name               string   `json:"name,omitempty"`
	Email              string   `json:"email,omitempty"`
	Available          bool     `json:"available,omitempty"`
	AvailabilityStatus string   `json:"availability_status,omitempty"`
	TimeZone           string   `json:"time_zone,omitempty"`
	Language           string   `json:"language,omitempty"`
	WrapUpTime         int      `json:"wrap_up_time,omitempty"`
	Numbers            []Number `json:"numbers,omitempty"`
}

func (u *User) validate() error {
	if u.ID == 0 {
		return errors.New("user is missing required field id")
	}
	return nil
}

// UsersService exposes the user endpoints.
type UsersService struct {
	client *Client
}

// Get retrieves a single user by ID.
func (s *UsersService) Get(ctx context.Context, id int64) (*User, error) {
	return fetchOne[User](ctx, s.client, http.MethodGet, fmt.Sprintf("users/%d", id), nil, nil, "user")
}

// List returns a lazy iterator over all users.
func (s *UsersService) List() *Iterator[User] {
	query := withDefaultPageSize(url.Values{}, s.client.pageSize)
	return newIterator[User](s.client, "users", "users", query)
}

// Availability reports the user's current availability status, e.g.
// "available", "custom" or "unavailable".
func (s *UsersService) Availability(ctx context.Context, id int64) (string, error) {
	var out struct {
		Availability string `json:"availability"`
	}
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("users/%d/availability", id), nil, nil, &out); err != nil {
		return "", err
	}
	if out.Availability == "" {
		return "", &DecodeError{Resource: "availability", Err: errors.New("response missing availability field")}
	}
	return out.Availability, nil
}
