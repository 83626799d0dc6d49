// Copyright (c) 2026 FISBook. All rights reserved.

package library

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fisbook/users-api/internal/platform/apperr"
	"github.com/fisbook/users-api/internal/platform/constants"
)

// maxProxyBody caps how much upstream payload is buffered per request.
const maxProxyBody = 4 << 20

// SiblingClient performs authenticated JSON GETs against one sibling
// microservice. It implements [Fetcher].
//
// Outbound requests always use the standard `Bearer <token>` convention,
// regardless of which form the inbound caller used.
type SiblingClient struct {
	name       string
	baseURL    string
	httpClient *http.Client
}

// NewSiblingClient constructs a client for the named sibling service.
// The timeout bounds the whole exchange so a hung downstream can never
// stall a handler past its deadline.
func NewSiblingClient(name, baseURL string, timeout time.Duration) *SiblingClient {
	return &SiblingClient{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name identifies the sibling service for logs and error messages.
func (client *SiblingClient) Name() string { return client.name }

/*
GetJSON fetches a JSON document from the sibling service.

Description: Status codes are translated into the service's error taxonomy.
Upstream 401 and 403 both collapse to Unauthorized because the forwarded
credential was rejected; transport failures and unexpected statuses become
upstream failures with the cause retained for logging.

Parameters:
  - context: context.Context (Carries the caller's deadline)
  - path: string (Absolute path on the sibling service)
  - bearerToken: string (The caller's verified token, forwarded as-is)

Returns:
  - json.RawMessage: Raw upstream body on 200
  - error: apperr.NotFound, apperr.Unauthorized, or apperr.UpstreamFailure
*/
func (client *SiblingClient) GetJSON(context context.Context, path, bearerToken string) (json.RawMessage, error) {
	request, err := http.NewRequestWithContext(context, http.MethodGet, client.baseURL+path, nil)
	if err != nil {
		return nil, apperr.UpstreamFailure(client.name, fmt.Errorf("sibling_request_build_failed: %w", err))
	}

	request.Header.Set(constants.HeaderAuthorization, "Bearer "+bearerToken)
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, apperr.UpstreamFailure(client.name, fmt.Errorf("sibling_request_failed: %w", err))
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(response.Body, maxProxyBody))
		if err != nil {
			return nil, apperr.UpstreamFailure(client.name, fmt.Errorf("sibling_body_read_failed: %w", err))
		}
		return json.RawMessage(body), nil

	case http.StatusNotFound:
		return nil, apperr.NotFound(client.name + " data")

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, apperr.Unauthorized("Token rejected by the " + client.name + " service")

	default:
		return nil, apperr.UpstreamFailure(client.name,
			fmt.Errorf("sibling_unexpected_status: %d", response.StatusCode))
	}
}
