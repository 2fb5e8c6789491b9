package aircall

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	qs "github.com/google/go-querystring/query"
	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds concurrent requests in GetMany, keeping well under
// the API's per-minute rate limit.
const batchConcurrency = 5

// Contact represents an Aircall contact.
type Contact struct {
	ID           int64          `json:"id,omitempty"`
	DirectLink   string         `json:"direct_link,omitempty"`
	FirstName    string         `json:"first_name,omitempty"`
	LastName     string         `json:"last_name,omitempty"`
	CompanyName  string         `json:"company_name,omitempty"`
	Information  string         `json:"information,omitempty"`
	IsShared     bool           `json:"is_shared,omitempty"`
	CreatedAt    int64          `json:"created_at,omitempty"`
	UpdatedAt    int64          `json:"updated_at,omitempty"`
	PhoneNumbers []ContactPhone `json:"phone_numbers,omitempty"`
	Emails       []ContactEmail `json:"emails,omitempty"`
}

func (c *Contact) validate() error {
	if c.ID == 0 {
		return errors.New("contact is missing required field id")
	}
	return nil
}

// FullName composes the contact's display name from its parts, falling back
// to the company name.
func (c *Contact) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name != "" {
		return name
	}
	return c.CompanyName
}

// ContactPhone is a labeled phone number attached to a contact.
type ContactPhone struct {
	ID    int64  `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// ContactEmail is a labeled email address attached to a contact.
type ContactEmail struct {
	ID    int64  `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// ContactListOptions narrows a contact listing.
type ContactListOptions struct {
	From    time.Time `url:"from,omitempty,unix"`
	To      time.Time `url:"to,omitempty,unix"`
	Order   string    `url:"order,omitempty"`
	PerPage int       `url:"per_page,omitempty"`

	Filters map[string]string `url:"-"`
}

// contactFilterKeys are the extra filter options the contact listing and
// search endpoints recognize.
var contactFilterKeys = map[string]bool{
	"phone_number": true,
	"email":        true,
}

func (o *ContactListOptions) validate() error {
	if o.Order != "" && o.Order != OrderAsc && o.Order != OrderDesc {
		return newValidationError("invalid order %q (must be %q or %q)", o.Order, OrderAsc, OrderDesc)
	}
	return validateFilterKeys("contacts", o.Filters, contactFilterKeys)
}

// ContactsService exposes the contact endpoints.
type ContactsService struct {
	client *Client
}

// Get retrieves a single contact by ID.
func (s *ContactsService) Get(ctx context.Context, id int64) (*Contact, error) {
	return fetchOne[Contact](ctx, s.client, http.MethodGet, fmt.Sprintf("contacts/%d", id), nil, nil, "contact")
}

// List returns a lazy iterator over contacts matching the options.
func (s *ContactsService) List(opts *ContactListOptions) (*Iterator[Contact], error) {
	return s.iterate("contacts", opts)
}

// Search returns a lazy iterator over contacts matched by phone number or
// email, supplied through the options' Filters.
func (s *ContactsService) Search(opts *ContactListOptions) (*Iterator[Contact], error) {
	return s.iterate("contacts/search", opts)
}

func (s *ContactsService) iterate(path string, opts *ContactListOptions) (*Iterator[Contact], error) {
	if opts == nil {
		opts = &ContactListOptions{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	query, err := qs.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode contact list options: %w", err)
	}
	for key, value := range opts.Filters {
		query.Set(key, value)
	}
	query = withDefaultPageSize(query, s.client.pageSize)

	return newIterator[Contact](s.client, "contacts", path, query), nil
}

// Create adds a new contact. At least one phone number or email is required.
// The returned record is the API's view of the created contact, IDs filled
// in.
func (s *ContactsService) Create(ctx context.Context, contact *Contact) (*Contact, error) {
	if contact == nil {
		return nil, newValidationError("contact is required")
	}
	if len(contact.PhoneNumbers) == 0 && len(contact.Emails) == 0 {
		return nil, newValidationError("contact needs at least one phone number or email")
	}
	return fetchOne[Contact](ctx, s.client, http.MethodPost, "contacts", nil, contact, "contact")
}

// Update modifies an existing contact.
func (s *ContactsService) Update(ctx context.Context, id int64, contact *Contact) (*Contact, error) {
	if contact == nil {
		return nil, newValidationError("contact is required")
	}
	return fetchOne[Contact](ctx, s.client, http.MethodPut, fmt.Sprintf("contacts/%d", id), nil, contact, "contact")
}

// Delete removes a contact.
func (s *ContactsService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("contacts/%d", id), nil, nil, nil)
}

// AddPhoneNumber attaches another phone number to the contact.
func (s *ContactsService) AddPhoneNumber(ctx context.Context, id int64, phone ContactPhone) error {
	if phone.Value == "" {
		return newValidationError("phone number value is required")
	}
	return s.client.do(ctx, http.MethodPost, fmt.Sprintf("contacts/%d/phone_details", id), nil, phone, nil)
}

// AddEmail attaches another email address to the contact.
func (s *ContactsService) AddEmail(ctx context.Context, id int64, email ContactEmail) error {
	if email.Value == "" {
		return newValidationError("email value is required")
	}
	return s.client.do(ctx, http.MethodPost, fmt.Sprintf("contacts/%d/email_details", id), nil, email, nil)
}

// GetMany fetches several contacts concurrently with bounded parallelism.
// The result is ordered by contact ID. The first failed fetch cancels the
// remaining ones.
func (s *ContactsService) GetMany(ctx context.Context, ids []int64) ([]*Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	var mu sync.Mutex
	contacts := make([]*Contact, 0, len(ids))

	for _, id := range ids {
		id := id
		g.Go(func() error {
			contact, err := s.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get contact %d: %w", id, err)
			}
			mu.Lock()
			contacts = append(contacts, contact)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })
	return contacts, nil
}
