// Copyright (c) 2026 FISBook. All rights reserved.

package library

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fisbook/users-api/internal/platform/apperr"
	"github.com/fisbook/users-api/internal/platform/constants"
	"github.com/fisbook/users-api/internal/platform/ctxutil"
)

// # Service Layer

// Service relays per-user library data from the sibling services, with a
// short-lived Redis cache in front of the network hop.
type Service struct {
	readingsClient Fetcher
	reviewsClient  Fetcher
	cache          Cache
}

// NewService constructs a new library [Service].
func NewService(readings, reviews Fetcher, cache Cache) *Service {
	return &Service{
		readingsClient: readings,
		reviewsClient:  reviews,
		cache:          cache,
	}
}

/*
GetReadings returns the reading lists owned by the given user.

Parameters:
  - context: context.Context
  - userID: string
  - bearerToken: string (The caller's verified token)

Returns:
  - json.RawMessage: Raw readings payload from the sibling service
  - error: apperr.NotFound, apperr.Unauthorized, or upstream failures
*/
func (service *Service) GetReadings(context context.Context, userID, bearerToken string) (json.RawMessage, error) {
	key := constants.RedisPrefixReadings + userID
	path := "/api/v1/readings/user/" + userID

	return service.fetchCached(context, service.readingsClient, key, path, bearerToken)
}

/*
GetBookReviews returns the book reviews authored by the given user.

Parameters:
  - context: context.Context
  - userID: string
  - bearerToken: string

Returns:
  - json.RawMessage: Raw reviews payload from the sibling service
  - error: apperr.NotFound, apperr.Unauthorized, or upstream failures
*/
func (service *Service) GetBookReviews(context context.Context, userID, bearerToken string) (json.RawMessage, error) {
	key := constants.RedisPrefixReviews + userID
	path := "/api/v1/reviews/user/" + userID + "/book"

	return service.fetchCached(context, service.reviewsClient, key, path, bearerToken)
}

// fetchCached consults the cache first and falls through to the sibling
// service on a miss. Cache write failures are logged, never surfaced: the
// cache is an optimization, not a dependency.
func (service *Service) fetchCached(context context.Context, client Fetcher, key, path, bearerToken string) (json.RawMessage, error) {
	logger := ctxutil.GetLogger(context)

	payload, err := service.cache.Get(context, key)
	if err == nil {
		logger.DebugContext(context, "library_cache_hit", slog.String("key", key))
		return payload, nil
	}
	if !apperr.IsAppError(err) {
		// Connectivity trouble, not a miss. Still fall through to the
		// sibling service so Redis outages stay invisible to clients.
		logger.WarnContext(context, "library_cache_unavailable",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	payload, err = client.GetJSON(context, path, bearerToken)
	if err != nil {
		return nil, fmt.Errorf("library_service_fetch_failed: %w", err)
	}

	if err := service.cache.Set(context, key, payload, cacheTTL); err != nil {
		logger.WarnContext(context, "library_cache_store_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	return payload, nil
}
