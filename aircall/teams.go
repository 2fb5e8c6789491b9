package aircall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Team represents a group of users sharing inbound call distribution.
type Team struct {
	ID         int64  `json:"id"`
	DirectLink string `json:"direct_link,omitempty"`
	Name       string `json:"name,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	Users      []User `json:"users,omitempty"`
}

func (t *Team) validate() error {
	if t.ID == 0 {
		return errors.New("team is missing required field id")
	}
	return nil
}

// TeamsService exposes the team endpoints.
type TeamsService struct {
	client *Client
}

// Get retrieves a single team by ID.
func (s *TeamsService) Get(ctx context.Context, id int64) (*Team, error) {
	return fetchOne[Team](ctx, s.client, http.MethodGet, fmt.Sprintf("teams/%d", id), nil, nil, "team")
}

// List returns a lazy iterator over all teams.
func (s *TeamsService) List() *Iterator[Team] {
	query := withDefaultPageSize(url.Values{}, s.client.pageSize)
	return newIterator[Team](s.client, "teams", "teams", query)
}

// Create adds a new team.
func (s *TeamsService) Create(ctx context.Context, name string) (*Team, error) {
	if name == "" {
		return nil, newValidationError("team name is required")
	}
	body := map[string]string{"name": name}
	return fetchOne[Team](ctx, s.client, http.MethodPost, "teams", nil, body, "team")
}

// Delete removes a team. Its users are kept.
func (s *TeamsService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("teams/%d", id), nil, nil, nil)
}

// AddUser puts a user on the team and returns the updated team.
func (s *TeamsService) AddUser(ctx context.Context, teamID, userID int64) (*Team, error) {
	return fetchOne[Team](ctx, s.client, http.MethodPost, fmt.Sprintf("teams/%d/users/%d", teamID, userID), nil, nil, "team")
}

// RemoveUser takes a user off the team and returns the updated team.
func (s *TeamsService) RemoveUser(ctx context.Context, teamID, userID int64) (*Team, error) {
	return fetchOne[Team](ctx, s.client, http.MethodDelete, fmt.Sprintf("teams/%d/users/%d", teamID, userID), nil, nil, "team")
}
