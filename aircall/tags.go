package aircall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Tag represents a label that can be attached to calls.
type Tag struct {
	ID          int64  `json:"id,omitempty"`
	DirectLink  string `json:"direct_link,omitempty"`
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

func (t *Tag) validate() error {
	if t.ID == 0 {
		return errors.New("tag is missing required field id")
	}
	return nil
}

// TagsService exposes the tag endpoints.
type TagsService struct {
	client *Client
}

// Get retrieves a single tag by ID.
func (s *TagsService) Get(ctx context.Context, id int64) (*Tag, error) {
	return fetchOne[Tag](ctx, s.client, http.MethodGet, fmt.Sprintf("tags/%d", id), nil, nil, "tag")
}

// List returns a lazy iterator over all tags.
func (s *TagsService) List() *Iterator[Tag] {
	query := withDefaultPageSize(url.Values{}, s.client.pageSize)
	return newIterator[Tag](s.client, "tags", "tags", query)
}

// Create adds a new tag.
func (s *TagsService) Create(ctx context.Context, tag *Tag) (*Tag, error) {
	if tag == nil || tag.Name == "" {
		return nil, newValidationError("tag name is required")
	}
	return fetchOne[Tag](ctx, s.client, http.MethodPost, "tags", nil, tag, "tag")
}

// Update modifies an existing tag.
func (s *TagsService) Update(ctx context.Context, id int64, tag *Tag) (*Tag, error) {
	if tag == nil {
		return nil, newValidationError("tag is required")
	}
	return fetchOne[Tag](ctx, s.client, http.MethodPut, fmt.Sprintf("tags/%d", id), nil, tag, "tag")
}

// Delete removes a tag.
func (s *TagsService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("tags/%d", id), nil, nil, nil)
}
