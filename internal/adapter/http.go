package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/mylife-client/internal/config"
	"github.com/MKhiriev/mylife-client/internal/logger"
	"github.com/MKhiriev/mylife-client/internal/utils"
	"github.com/MKhiriev/mylife-client/models"
	"github.com/go-resty/resty/v2"
)

const traceIDHeader = "X-Trace-ID"

type httpBackendAdapter struct {
	client *utils.HTTPClient
	ids    *utils.UUIDGenerator

	logger *logger.Logger
}

// vaultStatusWire mirrors the status payload with pointer fields so that a
// missing field can be told apart from a false one.
type vaultStatusWire struct {
	State       *models.VaultState `json:"state"`
	VaultExists *bool              `json:"vault_exists"`
	IsUnlocked  *bool              `json:"is_unlocked"`
}

// NewHTTPBackendAdapter constructs the resty implementation of
// [BackendAdapter]. The address may omit the scheme, "http://" is assumed.
func NewHTTPBackendAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (BackendAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	return &httpBackendAdapter{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// request prepares a resty request carrying the trace ID of ctx, or a fresh
// one when ctx has none.
func (h *httpBackendAdapter) request(ctx context.Context) (*resty.Request, string) {
	traceID, ok := utils.GetTraceIDFromContext(ctx)
	if !ok {
		traceID = h.ids.Generate()
	}
	return h.client.R().
		SetContext(ctx).
		SetHeader(traceIDHeader, traceID), traceID
}

// do executes method on path and decodes the envelope into out (nil for
// calls that only report success).
func do[T any](ctx context.Context, h *httpBackendAdapter, method, path string, body any, out *T) error {
	req, traceID := h.request(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		h.logger.Warn().Err(err).
			Str("trace_id", traceID).
			Str("method", method).
			Str("path", path).
			Msg("backend request failed")
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnreachable, err)
	}

	status := resp.StatusCode()
	if err = mapHTTPError(status, resp.Body()); err != nil {
		h.logger.Debug().Err(err).
			Str("trace_id", traceID).
			Str("path", path).
			Int("status", status).
			Msg("backend answered with an error")
		return err
	}

	if err = mapEnvelope(status, resp.Body(), out); err != nil {
		h.logger.Debug().Err(err).
			Str("trace_id", traceID).
			Str("path", path).
			Msg("backend envelope reported failure")
		return err
	}

	return nil
}

// Health implements [BackendAdapter]. GET /health answers a bare
// {"status":"ok"}, so only the status code is checked.
func (h *httpBackendAdapter) Health(ctx context.Context) error {
	req, _ := h.request(ctx)
	resp, err := req.Get("/health")
	if err != nil {
		return fmt.Errorf("health: %w: %w", ErrUnreachable, err)
	}

	return mapHTTPError(resp.StatusCode(), resp.Body())
}

// VaultStatus implements [BackendAdapter].
func (h *httpBackendAdapter) VaultStatus(ctx context.Context) (models.VaultStatus, error) {
	var wire vaultStatusWire
	if err := do(ctx, h, http.MethodGet, "/vault/status", nil, &wire); err != nil {
		return models.UnavailableVaultStatus(), err
	}

	if wire.State == nil || wire.VaultExists == nil || wire.IsUnlocked == nil {
		return models.UnavailableVaultStatus(), fmt.Errorf("%w: incomplete vault status", ErrMalformedResponse)
	}
	if !wire.State.Valid() {
		return models.UnavailableVaultStatus(), fmt.Errorf("%w: unknown vault state %q", ErrMalformedResponse, *wire.State)
	}

	return models.VaultStatus{
		State:       *wire.State,
		VaultExists: *wire.VaultExists,
		IsUnlocked:  *wire.IsUnlocked,
	}, nil
}

// SetupVault implements [BackendAdapter].
func (h *httpBackendAdapter) SetupVault(ctx context.Context, pin string) error {
	return do[models.MessageData](ctx, h, http.MethodPost, "/vault/setup", models.PINRequest{PIN: pin}, nil)
}

// UnlockVault implements [BackendAdapter].
func (h *httpBackendAdapter) UnlockVault(ctx context.Context, pin string) error {
	return do[models.MessageData](ctx, h, http.MethodPost, "/vault/unlock", models.PINRequest{PIN: pin}, nil)
}

// LockVault implements [BackendAdapter].
func (h *httpBackendAdapter) LockVault(ctx context.Context) error {
	return do[models.MessageData](ctx, h, http.MethodPost, "/vault/lock", nil, nil)
}

// RecoverVault implements [BackendAdapter].
func (h *httpBackendAdapter) RecoverVault(ctx context.Context) error {
	return do[models.MessageData](ctx, h, http.MethodPost, "/vault/recover", nil, nil)
}

// EmergencyExport implements [BackendAdapter]. The archive is streamed
// straight from the response body into w.
func (h *httpBackendAdapter) EmergencyExport(ctx context.Context, w io.Writer) (int64, error) {
	req, traceID := h.request(ctx)
	resp, err := req.
		SetHeader("Accept", "application/zip").
		SetDoNotParseResponse(true).
		Get("/vault/emergency-export")
	if err != nil {
		return 0, fmt.Errorf("emergency export: %w: %w", ErrUnreachable, err)
	}

	raw := resp.RawBody()
	defer raw.Close()

	if status := resp.StatusCode(); status < http.StatusOK || status >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(raw, 64<<10))
		return 0, mapHTTPError(status, body)
	}

	n, err := io.Copy(w, raw)
	if err != nil {
		return n, fmt.Errorf("emergency export: copy archive: %w", err)
	}

	h.logger.Info().
		Str("trace_id", traceID).
		Int64("bytes", n).
		Msg("emergency export downloaded")
	return n, nil
}

// SyncStatus implements [BackendAdapter].
func (h *httpBackendAdapter) SyncStatus(ctx context.Context) (models.SyncState, error) {
	var state models.SyncState
	if err := do(ctx, h, http.MethodGet, "/sync/status", nil, &state); err != nil {
		return models.SyncState{}, err
	}
	return state, nil
}

// Push implements [BackendAdapter].
func (h *httpBackendAdapter) Push(ctx context.Context) error {
	return do[models.MessageData](ctx, h, http.MethodPost, "/sync/push", nil, nil)
}

// Pull implements [BackendAdapter].
func (h *httpBackendAdapter) Pull(ctx context.Context) error {
	return do[models.MessageData](ctx, h, http.MethodPost, "/sync/pull", nil, nil)
}

// Conflicts implements [BackendAdapter].
func (h *httpBackendAdapter) Conflicts(ctx context.Context) ([]models.Conflict, error) {
	var list models.ConflictList
	if err := do(ctx, h, http.MethodGet, "/sync/conflicts", nil, &list); err != nil {
		return nil, err
	}
	if list.Conflicts == nil {
		return []models.Conflict{}, nil
	}
	return list.Conflicts, nil
}

// ResolveConflict implements [BackendAdapter].
func (h *httpBackendAdapter) ResolveConflict(ctx context.Context, strategy models.ResolveStrategy) error {
	return do[models.MessageData](ctx, h, http.MethodPost, "/sync/conflicts/resolve", models.ResolveRequest{Strategy: strategy}, nil)
}
