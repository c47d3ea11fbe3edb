package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/scanmark/rostersync/internal/config"
	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/internal/utils"
	"github.com/scanmark/rostersync/models"
)

type httpSyncAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPSyncAdapter constructs an HTTP/REST implementation of [ServerAdapter].
// It normalises and validates the base URL from adapterCfg.HTTPAddress and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPSyncAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpSyncAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// PushSnapshot implements [ServerAdapter]. It POSTs the snapshot to
// POST /api/sync/ and decodes the assigned code from the response. Returns
// an error if the request fails, the server rejects the snapshot, or the
// response cannot be decoded.
func (h *httpSyncAdapter) PushSnapshot(ctx context.Context, snapshot models.Snapshot) (models.CreateSyncResponse, error) {
	var created models.CreateSyncResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(snapshot).
		SetResult(&created).
		Post("/api/sync/")
	if err != nil {
		return models.CreateSyncResponse{}, fmt.Errorf("push snapshot request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CreateSyncResponse{}, err
	}

	return created, nil
}

// PullSnapshot implements [ServerAdapter]. It GETs /api/sync/ticket with the
// given code and decodes the snapshot from the response body. The server
// consumes the ticket on success: every later pull of the same code maps to
// [ErrCodeNotFound].
func (h *httpSyncAdapter) PullSnapshot(ctx context.Context, code string) (models.Snapshot, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("code", code).
		Get("/api/sync/ticket")
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("pull snapshot request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Snapshot{}, err
	}

	var snapshot models.Snapshot
	if err = json.Unmarshal(resp.Body(), &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode pull response: %w", err)
	}

	return snapshot, nil
}
