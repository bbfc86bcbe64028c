package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/dmitrijs2005/vaultview/internal/logging"
	"github.com/dmitrijs2005/vaultview/internal/server/models"
	"github.com/dmitrijs2005/vaultview/internal/server/services"
)

// The handler depends on narrow service interfaces so transport tests can
// run against fakes.
type UserService interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, userName string) ([]byte, error)
	Login(ctx context.Context, userName string, verifierCandidate []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type VaultService interface {
	Sync(ctx context.Context, userID string) ([]*models.Record, []*models.Collection, error)
}

type AttachmentService interface {
	DownloadURL(ctx context.Context, userID, recordID, attachmentID string) (string, error)
}

type EventService interface {
	Collect(ctx context.Context, userID, kind, recordID string) error
}

// Handler holds API route handlers.
type Handler struct {
	users       UserService
	vault       VaultService
	attachments AttachmentService
	events      EventService
	log         logging.Logger
}

func NewHandler(users UserService, vault VaultService,
	attachments AttachmentService, events EventService, log logging.Logger) *Handler {
	if log == nil {
		log = logging.NewNoopLogger()
	}
	return &Handler{users: users, vault: vault, attachments: attachments, events: events, log: log}
}

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Salt     []byte `json:"salt"`
		Verifier []byte `json:"verifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.Username == "" || len(req.Salt) == 0 || len(req.Verifier) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("username, salt and verifier are required"))
		return
	}

	if _, err := h.users.Register(r.Context(), req.Username, req.Salt, req.Verifier); err != nil {
		h.log.Error(r.Context(), "registration failed", "username", req.Username, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("registration failed"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// GetSalt handles POST /api/v1/auth/salt.
func (h *Handler) GetSalt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("username is required"))
		return
	}

	salt, err := h.users.GetSalt(r.Context(), req.Username)
	if err != nil {
		h.log.Error(r.Context(), "salt lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"salt": salt})
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Verifier []byte `json:"verifier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	pair, err := h.users.Login(r.Context(), req.Username, req.Verifier)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
			return
		}
		h.log.Error(r.Context(), "login failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeTokenPair(w, pair)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("refreshToken is required"))
		return
	}

	pair, err := h.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRefreshTokenExpired):
			writeJSON(w, http.StatusUnauthorized, errorBody(common.ErrRefreshTokenExpired.Error()))
		case errors.Is(err, common.ErrorUnauthorized):
			writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		default:
			h.log.Error(r.Context(), "token refresh failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	writeTokenPair(w, pair)
}

func writeTokenPair(w http.ResponseWriter, pair *services.TokenPair) {
	writeJSON(w, http.StatusOK, map[string]string{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Ping handles GET /api/v1/ping.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// wireRecord is the envelope shape records cross the wire in. Field names are
// shared with the client's storage layer.
type wireRecord struct {
	ID            string `json:"id"`
	Overview      []byte `json:"overview"`
	NonceOverview []byte `json:"nonceOverview"`
	Details       []byte `json:"details"`
	NonceDetails  []byte `json:"nonceDetails"`
	Deleted       bool   `json:"deleted"`
}

type wireCollection struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	ReadOnly       *bool  `json:"readOnly,omitempty"`
}

// Sync handles GET /api/v1/sync.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	records, collections, err := h.vault.Sync(r.Context(), userID)
	if err != nil {
		h.log.Error(r.Context(), "sync failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	wr := make([]wireRecord, 0, len(records))
	for _, rec := range records {
		wr = append(wr, wireRecord{
			ID:            rec.ID,
			Overview:      rec.Overview,
			NonceOverview: rec.NonceOverview,
			Details:       rec.Details,
			NonceDetails:  rec.NonceDetails,
			Deleted:       rec.Deleted,
		})
	}

	wc := make([]wireCollection, 0, len(collections))
	for _, c := range collections {
		wc = append(wc, wireCollection{
			ID:             c.ID,
			OrganizationID: c.OrganizationID,
			Name:           c.Name,
			ReadOnly:       c.ReadOnly,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": wr, "collections": wc})
}

// AttachmentURL handles GET /api/v1/records/{recordID}/attachments/{attachmentID}/url.
func (h *Handler) AttachmentURL(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	recordID := chi.URLParam(r, "recordID")
	attachmentID := chi.URLParam(r, "attachmentID")

	url, err := h.attachments.DownloadURL(r.Context(), userID, recordID, attachmentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		h.log.Error(r.Context(), "attachment url failed",
			"record_id", recordID, "attachment_id", attachmentID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// CollectEvent handles POST /api/v1/events.
func (h *Handler) CollectEvent(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req struct {
		Kind     string `json:"kind"`
		RecordID string `json:"recordId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Kind == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("kind is required"))
		return
	}

	if err := h.events.Collect(r.Context(), userID, req.Kind, req.RecordID); err != nil {
		h.log.Error(r.Context(), "event collection failed", "kind", req.Kind, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
