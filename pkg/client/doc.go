// Package client provides a small Go client for a JSONPlaceholder-style
// user directory API.
//
// # Quick Start
//
//	c := client.New()
//	body, err := c.GetUserRaw(ctx, 1)
//
// Use custom configuration:
//
//	c := client.New(
//	    client.WithBaseURL("http://localhost:8080"),
//	    client.WithUserAgent("my-server/2.0"),
//	    client.WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
//	)
//
// # Errors
//
// Non-2xx responses are returned as *APIError wrapped with request context.
// Use StatusOf or errors.As to inspect the status code:
//
//	if client.StatusOf(err) == http.StatusNotFound {
//	    // no such user
//	}
//
// Every request carries a User-Agent header and Accept: application/json.
package client
