package aircall

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactFullName(t *testing.T) {
	tests := []struct {
		name     string
		contact  Contact
		expected string
	}{
		{
			name:     "first and last",
			contact:  Contact{FirstName: "Ada", LastName: "Lovelace"},
			expected: "Ada Lovelace",
		},
		{
			name:     "first only",
			contact:  Contact{FirstName: "Ada"},
			expected: "Ada",
		},
		{
			name:     "company fallback",
			contact:  Contact{CompanyName: "Analytical Engines Ltd"},
			expected: "Analytical Engines Ltd",
		},
		{
			name:     "nothing",
			contact:  Contact{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.contact.FullName())
		})
	}
}

func TestContactsCreateRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contacts", r.URL.Path)

		// Echo the submitted contact back with IDs assigned, the way the
		// API answers a create.
		var contact Contact
		require.NoError(t, json.NewDecoder(r.Body).Decode(&contact))
		contact.ID = 101
		for i := range contact.PhoneNumbers {
			contact.PhoneNumbers[i].ID = int64(200 + i)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]Contact{"contact": contact})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	created, err := client.Contacts.Create(context.Background(), &Contact{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		CompanyName: "Analytical Engines Ltd",
		PhoneNumbers: []ContactPhone{
			{Label: "Work", Value: "+33612345678"},
		},
	})
	require.NoError(t, err)

	// Every caller-supplied field survives the round trip.
	assert.EqualValues(t, 101, created.ID)
	assert.Equal(t, "Ada", created.FirstName)
	assert.Equal(t, "Lovelace", created.LastName)
	assert.Equal(t, "Analytical Engines Ltd", created.CompanyName)
	require.Len(t, created.PhoneNumbers, 1)
	assert.Equal(t, "+33612345678", created.PhoneNumbers[0].Value)
	assert.Equal(t, "Work", created.PhoneNumbers[0].Label)
}

func TestContactsCreateValidation(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Contacts.Create(context.Background(), &Contact{FirstName: "Ada"})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.EqualValues(t, 0, requests.Load())
}

func TestContactsUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/contacts/101", r.URL.Path)

		fmt.Fprint(w, `{"contact": {"id": 101, "first_name": "Augusta"}}`)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	updated, err := client.Contacts.Update(context.Background(), 101, &Contact{FirstName: "Augusta"})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
}

func TestContactsDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/contacts/101", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	require.NoError(t, client.Contacts.Delete(context.Background(), 101))
}

func TestContactsSearchFilterValidation(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	_, err := client.Contacts.Search(&ContactListOptions{
		Filters: map[string]string{"phone": "+33612345678"},
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), `unrecognized contacts filter "phone"`)
}

func TestContactsGetMany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/contacts/")
		fmt.Fprintf(w, `{"contact": {"id": %s, "first_name": "c%s"}}`, id, id)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	contacts, err := client.Contacts.GetMany(context.Background(), []int64{5, 3, 9, 1})
	require.NoError(t, err)
	require.Len(t, contacts, 4)

	// Ordered by ID regardless of completion order.
	var ids []int64
	for _, contact := range contacts {
		ids = append(ids, contact.ID)
	}
	assert.Equal(t, []int64{1, 3, 5, 9}, ids)
}

func TestContactsGetManyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/contacts/")
		n, _ := strconv.Atoi(id)
		if n == 3 {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"contact not found"}`)
			return
		}
		fmt.Fprintf(w, `{"contact": {"id": %s}}`, id)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.Contacts.GetMany(context.Background(), []int64{1, 2, 3})
	require.Error(t, err)

	var notFoundErr *NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestContactsGetManyEmpty(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")
	contacts, err := client.Contacts.GetMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, contacts)
}

func TestContactsAddPhoneNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contacts/101/phone_details", r.URL.Path)

		var phone ContactPhone
		require.NoError(t, json.NewDecoder(r.Body).Decode(&phone))
		assert.Equal(t, "+33698765432", phone.Value)

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.Contacts.AddPhoneNumber(context.Background(), 101, ContactPhone{Label: "Mobile", Value: "+33698765432"})
	require.NoError(t, err)
}
