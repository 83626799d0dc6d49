// Copyright (c) 2026 FISBook. All rights reserved.

package library_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisbook/users-api/internal/library"
	"github.com/fisbook/users-api/internal/platform/apperr"
)

// fakeFetcher records calls and returns a canned payload or error.
type fakeFetcher struct {
	name      string
	payload   string
	err       error
	calls     int
	lastPath  string
	lastToken string
}

func (f *fakeFetcher) GetJSON(_ context.Context, path, bearerToken string) (json.RawMessage, error) {
	f.calls++
	f.lastPath = path
	f.lastToken = bearerToken
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.payload), nil
}

func (f *fakeFetcher) Name() string { return f.name }

// memoryCache is an in-memory Cache. A nil entries map simulates an
// unreachable cache backend.
type memoryCache struct {
	entries map[string]json.RawMessage
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]json.RawMessage{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (json.RawMessage, error) {
	if c.entries == nil {
		return nil, errors.New("cache backend down")
	}
	if payload, ok := c.entries[key]; ok {
		return payload, nil
	}
	return nil, apperr.NotFound("Cache entry")
}

func (c *memoryCache) Set(_ context.Context, key string, payload json.RawMessage, _ time.Duration) error {
	c.sets++
	if c.entries == nil {
		return errors.New("cache backend down")
	}
	c.entries[key] = payload
	return nil
}

/*
TestService_GetReadings_MissThenHit verifies a cache miss fetches upstream
and the follow-up request is served from cache.
*/
func TestService_GetReadings_MissThenHit(t *testing.T) {
	readings := &fakeFetcher{name: "readings", payload: `[{"titulo":"Quijote"}]`}
	reviews := &fakeFetcher{name: "reviews", payload: `[]`}
	cache := newMemoryCache()
	service := library.NewService(readings, reviews, cache)

	payload, err := service.GetReadings(context.Background(), "user-1", "tok")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"titulo":"Quijote"}]`, string(payload))
	assert.Equal(t, 1, readings.calls)
	assert.Equal(t, "/api/v1/readings/user/user-1", readings.lastPath)
	assert.Equal(t, "tok", readings.lastToken)

	// Second call must not touch the sibling service.
	payload, err = service.GetReadings(context.Background(), "user-1", "tok")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"titulo":"Quijote"}]`, string(payload))
	assert.Equal(t, 1, readings.calls)
}

/*
TestService_GetBookReviews_Path verifies the reviews route shape.
*/
func TestService_GetBookReviews_Path(t *testing.T) {
	readings := &fakeFetcher{name: "readings", payload: `[]`}
	reviews := &fakeFetcher{name: "reviews", payload: `[{"nota":5}]`}
	service := library.NewService(readings, reviews, newMemoryCache())

	payload, err := service.GetBookReviews(context.Background(), "user-9", "tok")
	require.NoError(t, err)

	assert.JSONEq(t, `[{"nota":5}]`, string(payload))
	assert.Equal(t, "/api/v1/reviews/user/user-9/book", reviews.lastPath)
	assert.Equal(t, 0, readings.calls)
}

/*
TestService_UpstreamErrorPropagates verifies fetch failures surface and
nothing is cached.
*/
func TestService_UpstreamErrorPropagates(t *testing.T) {
	readings := &fakeFetcher{name: "readings", err: apperr.NotFound("readings data")}
	cache := newMemoryCache()
	service := library.NewService(readings, &fakeFetcher{name: "reviews"}, cache)

	payload, err := service.GetReadings(context.Background(), "user-1", "tok")

	assert.Nil(t, payload)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
	assert.Equal(t, 0, cache.sets)
}

/*
TestService_CacheOutageFallsThrough verifies a broken cache backend never
breaks the proxy path.
*/
func TestService_CacheOutageFallsThrough(t *testing.T) {
	readings := &fakeFetcher{name: "readings", payload: `[]`}
	brokenCache := &memoryCache{entries: nil}
	service := library.NewService(readings, &fakeFetcher{name: "reviews"}, brokenCache)

	payload, err := service.GetReadings(context.Background(), "user-1", "tok")

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(payload))
	assert.Equal(t, 1, readings.calls)
}
