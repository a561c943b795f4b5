package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zbmott/snafoo-challenge/internal/domain"
	"github.com/zbmott/snafoo-challenge/internal/metrics"
)

const (
	snacksPath      = "/snacks"
	httpCallTimeout = 10 * time.Second
)

// APISource implements domain.SnackSource against the external Snack Food
// API. A single failed call surfaces immediately as a SourceError; there are
// no retries.
type APISource struct {
	apiBase string
	apiKey  string
	client  *http.Client
}

func NewAPISource(apiBase, apiKey string) *APISource {
	return &APISource{
		apiBase: apiBase,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: httpCallTimeout},
	}
}

func (s *APISource) authorize(req *http.Request) {
	req.Header.Set("Authorization", "ApiKey "+s.apiKey)
}

// List fetches the available snacks from the Snack Food API.
func (s *APISource) List(ctx context.Context) ([]domain.Snack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiBase+snacksPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create list request: %w", err)
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.CatalogRequests.WithLabelValues("list", "transport_error").Inc()
		return nil, &SourceError{Kind: ErrUnknown, Message: "Unknown error with Snack API. Maybe it's undergoing maintenance?"}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.CatalogRequests.WithLabelValues("list", "access_denied").Inc()
		return nil, &SourceError{Kind: ErrAccessDenied, Message: "Access denied to Snack API. Check the API key."}
	case resp.StatusCode != http.StatusOK:
		metrics.CatalogRequests.WithLabelValues("list", "unknown").Inc()
		return nil, &SourceError{Kind: ErrUnknown, Message: "Unknown error with Snack API. Maybe it's undergoing maintenance?"}
	}

	var snacks []domain.Snack
	if err := json.NewDecoder(resp.Body).Decode(&snacks); err != nil {
		metrics.CatalogRequests.WithLabelValues("list", "decode_error").Inc()
		return nil, &SourceError{Kind: ErrUnknown, Message: "Unknown error with Snack API. Maybe it's undergoing maintenance?"}
	}

	metrics.CatalogRequests.WithLabelValues("list", "ok").Inc()
	return snacks, nil
}

// Suggest submits a new snack suggestion. Latitude and longitude are only
// included when both are present; the form layer enforces the same rule, but
// a partial pair must never go out on the wire regardless of the caller.
func (s *APISource) Suggest(ctx context.Context, name, location string, latitude, longitude *float64) (*domain.Snack, error) {
	payload := map[string]any{
		"name":     name,
		"location": location,
	}
	if latitude != nil && longitude != nil {
		payload["latitude"] = *latitude
		payload["longitude"] = *longitude
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode suggestion: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiBase+snacksPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create suggest request: %w", err)
	}
	s.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.CatalogRequests.WithLabelValues("suggest", "transport_error").Inc()
		return nil, &SourceError{Kind: ErrUnknown, Message: "Unknown error with Snack API. Maybe it's undergoing maintenance?"}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		metrics.CatalogRequests.WithLabelValues("suggest", "malformed").Inc()
		return nil, &SourceError{Kind: ErrMalformed, Message: "Malformed suggestion submitted to Snack API."}
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.CatalogRequests.WithLabelValues("suggest", "access_denied").Inc()
		return nil, &SourceError{Kind: ErrAccessDenied, Message: "Access denied to Snack API. Check the API key."}
	case resp.StatusCode == http.StatusConflict:
		metrics.CatalogRequests.WithLabelValues("suggest", "conflict").Inc()
		return nil, &SourceError{Kind: ErrConflict, Message: "Error: That snack already exists!"}
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		metrics.CatalogRequests.WithLabelValues("suggest", "unknown").Inc()
		return nil, &SourceError{
			Kind:    ErrUnknown,
			Message: fmt.Sprintf("Unknown error with Snack API (response code %d). Maybe it's undergoing maintenance?", resp.StatusCode),
		}
	}

	var snack domain.Snack
	if err := json.NewDecoder(resp.Body).Decode(&snack); err != nil {
		metrics.CatalogRequests.WithLabelValues("suggest", "decode_error").Inc()
		return nil, &SourceError{Kind: ErrUnknown, Message: "Unknown error with Snack API. Maybe it's undergoing maintenance?"}
	}

	metrics.CatalogRequests.WithLabelValues("suggest", "ok").Inc()
	return &snack, nil
}
