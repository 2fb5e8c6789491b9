package aircall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Meta is the pagination envelope returned alongside every listing response.
// NextPageLink is the cursor; an empty link marks the last page.
type Meta struct {
	Count            int    `json:"count"`
	Total            int    `json:"total"`
	CurrentPage      int    `json:"current_page"`
	PerPage          int    `json:"per_page"`
	NextPageLink     string `json:"next_page_link"`
	PreviousPageLink string `json:"previous_page_link"`
}

// HasMorePages checks if there are more pages to fetch
func (m *Meta) HasMorePages() bool {
	return m.NextPageLink != ""
}

// Iterator walks a paginated listing lazily, one record at a time. The next
// page is fetched only once the previous page's records are exhausted, so a
// consumer that stops early never pays for a full sweep.
//
// An Iterator is a single forward pass: it is not safe for concurrent
// advancement and cannot be rewound. Call the service's List method again
// for a fresh sweep.
type Iterator[T any] struct {
	client    *Client
	key       string
	nextPath  string
	nextQuery url.Values
	buf       []T
	idx       int
	current   T
	meta      *Meta
	done      bool
	err       error
}

// newIterator defers the first page fetch until the first Next call.
func newIterator[T any](c *Client, key, path string, query url.Values) *Iterator[T] {
	return &Iterator[T]{
		client:    c,
		key:       key,
		nextPath:  path,
		nextQuery: query,
	}
}

// Next advances the iterator, fetching the next page on demand. It returns
// false when the listing is exhausted or a fetch failed; check Err to tell
// the two apart.
func (it *Iterator[T]) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	for it.idx >= len(it.buf) {
		if it.done {
			return false
		}
		if err := it.fetch(ctx); err != nil {
			it.err = err
			return false
		}
	}
	it.current = it.buf[it.idx]
	it.idx++
	return true
}

// Record returns the record the last successful Next call advanced to.
func (it *Iterator[T]) Record() T {
	return it.current
}

// Err returns the first error the iterator ran into, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Meta returns the pagination info of the most recently fetched page, or nil
// before the first fetch.
func (it *Iterator[T]) Meta() *Meta {
	return it.meta
}

// All drains the iterator and returns every remaining record.
func (it *Iterator[T]) All(ctx context.Context) ([]T, error) {
	var records []T
	for it.Next(ctx) {
		records = append(records, it.Record())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// fetch loads the next page into the buffer and records the follow-up cursor.
func (it *Iterator[T]) fetch(ctx context.Context) error {
	raw, _, err := it.client.doRaw(ctx, http.MethodGet, it.nextPath, it.nextQuery, nil)
	if err != nil {
		return err
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &DecodeError{Resource: it.key, Err: err}
	}

	it.buf = nil
	it.idx = 0

	if data, ok := envelope[it.key]; ok {
		var page []T
		if err := json.Unmarshal(data, &page); err != nil {
			return &DecodeError{Resource: it.key, Err: err}
		}
		for i := range page {
			if err := validateRecord(&page[i]); err != nil {
				return &DecodeError{Resource: it.key, Err: err}
			}
		}
		it.buf = page
	}

	it.meta = nil
	if data, ok := envelope["meta"]; ok {
		var meta Meta
		if err := json.Unmarshal(data, &meta); err != nil {
			return &DecodeError{Resource: "meta", Err: err}
		}
		it.meta = &meta
	}

	if it.meta == nil || !it.meta.HasMorePages() {
		it.done = true
		it.nextPath, it.nextQuery = "", nil
		return nil
	}

	path, query, err := splitPageLink(it.meta.NextPageLink)
	if err != nil {
		return &DecodeError{Resource: "meta", Err: err}
	}
	it.nextPath, it.nextQuery = path, query
	return nil
}

// splitPageLink turns a next_page_link, either an absolute URL or a /v1
// path, into a path and query relative to the client base URL.
func splitPageLink(link string) (string, url.Values, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", nil, fmt.Errorf("invalid next page link %q: %w", link, err)
	}

	path := strings.TrimPrefix(parsed.Path, "/v1")
	path = strings.TrimLeft(path, "/")
	if path == "" {
		return "", nil, fmt.Errorf("next page link %q has no path", link)
	}

	query, err := url.ParseQuery(parsed.RawQuery)
	if err != nil {
		return "", nil, fmt.Errorf("invalid next page link query %q: %w", link, err)
	}

	return path, query, nil
}

// withDefaultPageSize fills in the client's per_page default when the
// caller's options didn't set one.
func withDefaultPageSize(query url.Values, pageSize int) url.Values {
	if query == nil {
		query = url.Values{}
	}
	if query.Get("per_page") == "" {
		query.Set("per_page", strconv.Itoa(pageSize))
	}
	return query
}
