package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/vaultview/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// HTTPClient talks JSON over HTTP to the vault server.
//
// It owns the token pair: expired access tokens are refreshed transparently
// and the failed request is replayed once, mirroring the server's token
// lifecycle.
type HTTPClient struct {
	baseURL      string
	http         *http.Client
	accessToken  string
	refreshToken string
}

// NewHTTPClient builds a client for the given base URL, e.g.
// "http://127.0.0.1:8080".
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// errorBody is the JSON error shape every server endpoint produces.
type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username string, salt []byte, verifier []byte) error {
	body := map[string]any{"username": username, "salt": salt, "verifier": verifier}
	return c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, nil)
}

func (c *HTTPClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 12*time.Second)
	defer cancel()

	var resp struct {
		Salt []byte `json:"salt"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/salt", map[string]any{"username": username}, &resp); err != nil {
		return nil, err
	}
	return resp.Salt, nil
}

func (c *HTTPClient) Login(ctx context.Context, username string, verifier []byte) error {
	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}

	body := map[string]any{"username": username, "verifier": verifier}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return err
	}

	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/ping", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return common.ErrNetwork
	}
	return nil
}

func (c *HTTPClient) Sync(ctx context.Context) (*SyncResponse, error) {
	var resp SyncResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/sync", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) AttachmentURL(ctx context.Context, recordID, attachmentID string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	path := fmt.Sprintf("/api/v1/records/%s/attachments/%s/url", recordID, attachmentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *HTTPClient) CollectEvent(ctx context.Context, kind string, recordID string) error {
	body := map[string]any{"kind": kind, "recordId": recordID}
	return c.do(ctx, http.MethodPost, "/api/v1/events", body, nil)
}

// Premium decodes the access token claims without verifying the signature
// (the server is the authority; the client only mirrors what it was issued).
func (c *HTTPClient) Premium() bool {
	if c.accessToken == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(c.accessToken, claims); err != nil {
		return false
	}

	premium, _ := claims[common.PremiumClaimName].(bool)
	return premium
}

// do performs one JSON request/response cycle. On an expired access token it
// refreshes the pair and replays the request once.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	err := c.once(ctx, method, path, body, out)
	if err == nil {
		return nil
	}

	if !isTokenExpired(err) || c.refreshToken == "" {
		return err
	}

	if err := c.refresh(ctx); err != nil {
		return err
	}
	return c.once(ctx, method, path, body, out)
}

func (c *HTTPClient) refresh(ctx context.Context) error {
	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}

	body := map[string]any{"refreshToken": c.refreshToken}
	if err := c.once(ctx, http.MethodPost, "/api/v1/auth/refresh", body, &resp); err != nil {
		return err
	}

	c.accessToken = resp.AccessToken
	c.refreshToken = resp.RefreshToken
	return nil
}

func (c *HTTPClient) once(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.mapError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", common.ErrNetwork, err)
	}
	return nil
}

// mapError turns an HTTP error response into one of the shared sentinel
// errors, preserving the server message for the user-visible cases.
func (c *HTTPClient) mapError(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusNotFound:
		if eb.Message != "" {
			return fmt.Errorf("%w: %s", common.ErrorNotFound, eb.Message)
		}
		return common.ErrorNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		if eb.Message == common.ErrTokenExpired.Error() {
			return common.ErrTokenExpired
		}
		return common.ErrorUnauthorized
	default:
		if eb.Message != "" {
			return fmt.Errorf("%w: %s", common.ErrNetwork, eb.Message)
		}
		return fmt.Errorf("%w: unexpected status %s", common.ErrNetwork, resp.Status)
	}
}

func isTokenExpired(err error) bool {
	return errors.Is(err, common.ErrTokenExpired)
}
