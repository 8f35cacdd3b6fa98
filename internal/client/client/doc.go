// Package client talks to the careercoach backend over HTTP+JSON.
//
// # Overview
//
//  1. HTTPClient.Do executes a Request: it joins the endpoint onto the base
//     URL, attaches "Authorization: Bearer <token>" from a TokenSource unless
//     the request is Anonymous, stamps an X-Request-ID, and decodes the JSON
//     response into the caller's value.
//  2. Fetch[T] wraps any Doer and folds every outcome into a Result[T]
//     carrying either Data or a user-facing Error string.
//  3. Client is the authentication surface (login, current user, register,
//     forgot password, resume parsing) implemented by HTTPClient.
//
// # Error Handling
//
// Every failure is an *Error with a Kind:
//
//	network       transport failure          "Network error occurred"
//	unauthorized  401/403                    server message or "Authentication required"
//	validation    422 or field-level detail  Fields filled from detail[].loc
//	server        other non-2xx              server detail/message verbatim
//	parse         2xx with undecodable body  "Unexpected response from server"
//
// Callers match with errors.Is against ErrUnavailable, ErrUnauthorized,
// ErrValidation and ErrUnexpected. There is no retry and no client-side
// timeout; the caller's context bounds every request.
package client
