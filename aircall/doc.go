// Package aircall provides a client for the Aircall REST API.
//
// Aircall is a cloud phone system; this package implements a typed,
// idiomatic Go client for its v1 API: calls, contacts, numbers, users,
// teams, tags, webhooks and AI voice agents.
//
// # Architecture
//
// The package is organized into several components:
//
//   - Client: the facade owning credentials, shared configuration and the
//     single HTTP transport used by every service
//   - Services: one accessor per resource family (Client.Calls,
//     Client.Contacts, ...) exposing get/list/create/update/delete style
//     operations
//   - Iterator: a lazy, cursor-driven walk over paginated listings
//   - Errors: a typed error taxonomy, one type per fault kind
//
// # Usage
//
// Create a client with your API ID and token:
//
//	logger := zerolog.New(os.Stderr)
//	client, err := aircall.NewClient(apiID, apiToken, logger,
//		aircall.WithTimeout(30*time.Second),
//		aircall.WithPageSize(50),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	it, err := client.Calls.List(&aircall.CallListOptions{
//		Direction: aircall.DirectionInbound,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for it.Next(ctx) {
//		call := it.Record()
//		fmt.Println(call.ID, call.RawDigits)
//	}
//	if err := it.Err(); err != nil {
//		log.Fatal(err)
//	}
//
// Pages are fetched on demand: breaking out of the loop early never costs a
// full pagination sweep. Every List call starts a fresh sweep from page one;
// a single iterator must not be advanced from multiple goroutines.
//
// # Error Handling
//
// Every fault surfaces as a typed error, inspectable with errors.As:
//
//   - ConfigurationError: bad or missing credentials, raised at construction
//   - TransportError: network-level failure, possibly transient
//   - AuthenticationError: HTTP 401/403
//   - NotFoundError: HTTP 404
//   - ValidationError: HTTP 400/422 or a request rejected client-side,
//     field-level details preserved verbatim
//   - RateLimitError: HTTP 429, with the Retry-After value when present
//   - ServerError: HTTP 5xx
//   - APIError: any other non-2xx response
//   - DecodeError: a response that does not match the expected shape
//
// The client never retries internally. RateLimitError and ServerError are
// surfaced so callers can apply their own backoff policy.
//
// # Thread Safety
//
// A Client is safe for concurrent use by multiple goroutines; credentials
// and configuration are read-only after construction. Iterators are the one
// exception, each goroutine needs its own.
package aircall
