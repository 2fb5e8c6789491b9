package aircall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	qs "github.com/google/go-querystring/query"
)

// Call directions.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Call statuses.
const (
	CallStatusInitial  = "initial"
	CallStatusAnswered = "answered"
	CallStatusDone     = "done"
)

// Sort orders for listing requests.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Call represents a phone call placed or received through Aircall.
type Call struct {
	ID               int64     `json:"id"`
	DirectLink       string    `json:"direct_link,omitempty"`
	Status           string    `json:"status,omitempty"`
	Direction        string    `json:"direction,omitempty"`
	StartedAt        int64     `json:"started_at,omitempty"`
	AnsweredAt       int64     `json:"answered_at,omitempty"`
	EndedAt          int64     `json:"ended_at,omitempty"`
	Duration         int       `json:"duration,omitempty"`
	RawDigits        string    `json:"raw_digits,omitempty"`
	Voicemail        string    `json:"voicemail,omitempty"`
	Recording        string    `json:"recording,omitempty"`
	Archived         bool      `json:"archived,omitempty"`
	MissedCallReason string    `json:"missed_call_reason,omitempty"`
	Cost             string    `json:"cost,omitempty"`
	User             *User     `json:"user,omitempty"`
	Contact          *Contact  `json:"contact,omitempty"`
	Number           *Number   `json:"number,omitempty"`
	AssignedTo       *User     `json:"assigned_to,omitempty"`
	Teams            []Team    `json:"teams,omitempty"`
	Tags             []Tag     `json:"tags,omitempty"`
	Comments         []Comment `json:"comments,omitempty"`
}

func (c *Call) validate() error {
	if c.ID == 0 {
		return errors.New("call is missing required field id")
	}
	return nil
}

// StartedTime returns the call start as a time.Time.
func (c *Call) StartedTime() time.Time {
	return time.Unix(c.StartedAt, 0)
}

// IsInbound checks if the call came in rather than out.
func (c *Call) IsInbound() bool {
	return c.Direction == DirectionInbound
}

// IsMissed checks if the call ended without being answered.
func (c *Call) IsMissed() bool {
	if c.MissedCallReason != "" {
		return true
	}
	return c.Status == CallStatusDone && c.AnsweredAt == 0
}

// Comment represents a note attached to a call.
type Comment struct {
	ID       int64  `json:"id"`
	Content  string `json:"content"`
	PostedAt int64  `json:"posted_at,omitempty"`
	PostedBy *User  `json:"posted_by,omitempty"`
}

// CallListOptions narrows a call listing. Zero-value fields are omitted from
// the request. Filters holds additional recognized query options; unknown
// keys are rejected before any request is made.
type CallListOptions struct {
	From      time.Time `url:"from,omitempty,unix"`
	To        time.Time `url:"to,omitempty,unix"`
	Direction string    `url:"direction,omitempty"`
	Order     string    `url:"order,omitempty"`
	PerPage   int       `url:"per_page,omitempty"`

	Filters map[string]string `url:"-"`
}

// callFilterKeys are the extra filter options the calls listing recognizes.
var callFilterKeys = map[string]bool{
	"user_id":       true,
	"number_id":     true,
	"phone_number":  true,
	"tags":          true,
	"fetch_contact": true,
}

func (o *CallListOptions) validate() error {
	if o.Direction != "" && o.Direction != DirectionInbound && o.Direction != DirectionOutbound {
		return newValidationError("invalid call direction %q (must be %q or %q)", o.Direction, DirectionInbound, DirectionOutbound)
	}
	if o.Order != "" && o.Order != OrderAsc && o.Order != OrderDesc {
		return newValidationError("invalid order %q (must be %q or %q)", o.Order, OrderAsc, OrderDesc)
	}
	return validateFilterKeys("calls", o.Filters, callFilterKeys)
}

// CallsService exposes the call endpoints.
type CallsService struct {
	client *Client
}

// Get retrieves a single call by ID.
func (s *CallsService) Get(ctx context.Context, id int64) (*Call, error) {
	return fetchOne[Call](ctx, s.client, http.MethodGet, fmt.Sprintf("calls/%d", id), nil, nil, "call")
}

// List returns a lazy iterator over calls matching the options. Option
// validation happens here; no request is issued until the first Next call.
func (s *CallsService) List(opts *CallListOptions) (*Iterator[Call], error) {
	if opts == nil {
		opts = &CallListOptions{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	query, err := qs.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode call list options: %w", err)
	}
	for key, value := range opts.Filters {
		query.Set(key, value)
	}
	query = withDefaultPageSize(query, s.client.pageSize)

	return newIterator[Call](s.client, "calls", "calls", query), nil
}

// Search returns a lazy iterator over calls matching the options via the
// search endpoint, which supports the phone_number and user_id filters.
func (s *CallsService) Search(opts *CallListOptions) (*Iterator[Call], error) {
	if opts == nil {
		opts = &CallListOptions{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	query, err := qs.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode call search options: %w", err)
	}
	for key, value := range opts.Filters {
		query.Set(key, value)
	}
	query = withDefaultPageSize(query, s.client.pageSize)

	return newIterator[Call](s.client, "calls", "calls/search", query), nil
}

// Transfer hands the call over to another user.
func (s *CallsService) Transfer(ctx context.Context, id, userID int64) error {
	body := map[string]int64{"user_id": userID}
	return s.client.do(ctx, http.MethodPost, fmt.Sprintf("calls/%d/transfer", id), nil, body, nil)
}

// Comment attaches a note to the call.
func (s *CallsService) Comment(ctx context.Context, id int64, content string) error {
	if content == "" {
		return newValidationError("comment content is required")
	}
	body := map[string]string{"content": content}
	return s.client.do(ctx, http.MethodPost, fmt.Sprintf("calls/%d/comments", id), nil, body, nil)
}

// SetTags replaces the tags on the call.
func (s *CallsService) SetTags(ctx context.Context, id int64, tagIDs []int64) error {
	body := map[string][]int64{"tags": tagIDs}
	return s.client.do(ctx, http.MethodPost, fmt.Sprintf("calls/%d/tags", id), nil, body, nil)
}

// Archive moves the call out of the to-do list.
func (s *CallsService) Archive(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodPut, fmt.Sprintf("calls/%d/archive", id), nil, nil, nil)
}

// DeleteRecording removes the call's recording.
func (s *CallsService) DeleteRecording(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("calls/%d/recording", id), nil, nil, nil)
}

// DeleteVoicemail removes the call's voicemail.
func (s *CallsService) DeleteVoicemail(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("calls/%d/voicemail", id), nil, nil, nil)
}
