// Copyright (c) 2026 FISBook. All rights reserved.

/*
Package library proxies per-user data from the sibling readings and reviews
microservices.

The users service does not own reading lists or reviews; it forwards the
caller's bearer token to the owning service and relays the JSON payload.
Successful payloads are cached briefly in Redis to absorb hot-path repeats.
*/
package library

import (
	"context"
	"encoding/json"
	"time"
)

// cacheTTL bounds how stale a proxied payload may be. Kept short because
// the owning services mutate this data out of band.
const cacheTTL = 60 * time.Second

// Fetcher is the outbound contract to one sibling service.
type Fetcher interface {
	// GetJSON performs an authenticated GET and returns the raw JSON body.
	GetJSON(context context.Context, path, bearerToken string) (json.RawMessage, error)

	// Name identifies the sibling service for logs and error messages.
	Name() string
}

// Cache is the payload cache contract. Get returns apperr.NotFound on a
// miss so callers can fall through to the network.
type Cache interface {
	Get(context context.Context, key string) (json.RawMessage, error)
	Set(context context.Context, key string, payload json.RawMessage, ttl time.Duration) error
}
