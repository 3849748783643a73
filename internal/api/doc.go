// Package api provides the HTTP transport for the recipe REST API.
//
// # Overview
//
// Client is a small JSON-over-HTTP client. It knows how to resolve paths
// against the configured API root, encode request bodies, decode responses
// and turn error statuses into *StatusError. It has no knowledge of recipes,
// favorites or reviews; the resource services in package recipes are built
// on top of the Requester interface it implements.
//
// # Base URL
//
// NewClient accepts either a full URL ("https://resep.example.com") or a bare
// host:port ("127.0.0.1:3000", assumed http). Any path, query or fragment on
// the base is dropped because every endpoint is absolute (/api/v1/...).
//
// # Error Handling
//
// Errors are wrapped with %w and carry a short prefix naming the step that
// failed:
//
//   - "encode request": the body could not be marshalled
//   - "create request": the request could not be built
//   - "execute request": transport failure (refused, timeout, DNS)
//   - "read response" / "decode response": the body was unreadable or not JSON
//
// Responses with status >= 400 return *StatusError, whose Message is taken
// from the API's {"message": ...} or {"error": ...} body when present.
// Nothing is retried here; callers decide what to do with a failure.
//
// # Logging
//
// Every request is logged through logrus: debug on success with method,
// path, status and duration, warn on transport failures and error statuses.
// Without WithLogger the client logs to io.Discard.
//
// # Usage Example
//
//	client, err := api.NewClient(cfg.APIURL,
//		api.WithTimeout(cfg.RequestTimeout),
//		api.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	var raw any
//	err = client.Get(ctx, "/api/v1/recipes", url.Values{"page": {"1"}}, &raw)
package api
