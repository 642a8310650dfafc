// Package bridge talks to the barbers mobile app backend on behalf of shops.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/mykinyozi/kinyozi-api/internal/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	// expirySkew refreshes a token slightly before the server rejects it.
	expirySkew = 30 * time.Second
	// fallbackTTL applies to tokens that carry no exp claim.
	fallbackTTL = time.Hour
)

var errUnauthorized = errors.New("bridge: unauthorized")

// TokenStore caches the shared bearer token. Get returns "" when nothing is
// cached.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type Config struct {
	BaseURL  string
	Email    string
	Password string
	Timeout  time.Duration
}

// Client reads bookings from the mobile app with a cached bearer token. Two
// requests racing on an expired token may both log in; the later write wins.
type Client struct {
	cfg   Config
	http  *http.Client
	store TokenStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewClient(cfg Config, store TokenStore, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: timeout},
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Bookings returns the raw bookings payload for a shop. A 401 from the app
// evicts the cached token and triggers one refresh and retry.
func (c *Client) Bookings(ctx context.Context, shopPublicID string) (json.RawMessage, error) {
	token, err := c.token(ctx, false)
	if err != nil {
		return nil, err
	}

	raw, err := c.fetchBookings(ctx, token, shopPublicID)
	if errors.Is(err, errUnauthorized) {
		c.evict(ctx)
		if token, err = c.token(ctx, true); err != nil {
			return nil, err
		}
		raw, err = c.fetchBookings(ctx, token, shopPublicID)
		if errors.Is(err, errUnauthorized) {
			c.evict(ctx)
		}
	}
	return raw, err
}

// evict drops a token the app has rejected so a failed refresh does not leave
// it cached for the next request.
func (c *Client) evict(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Warn().Err(err).Msg("bridge token cache clear failed")
	}
}

func (c *Client) token(ctx context.Context, force bool) (string, error) {
	if !force {
		cached, err := c.store.Get(ctx)
		if err != nil {
			c.log.Warn().Err(err).Msg("bridge token cache read failed")
		}
		if cached != "" && c.ttl(cached) > 0 {
			return cached, nil
		}
	}

	token, err := c.login(ctx)
	if err != nil {
		metrics.BridgeTokenRefreshTotal.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.BridgeTokenRefreshTotal.WithLabelValues("ok").Inc()

	if err := c.store.Set(ctx, token, c.ttl(token)); err != nil {
		c.log.Warn().Err(err).Msg("bridge token cache write failed")
	}
	c.log.Info().Msg("bridge token refreshed")
	return token, nil
}

// ttl reads the exp claim without verifying the signature; the token is
// issued by the app and only ever sent back to it.
func (c *Client) ttl(token string) time.Duration {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return 0
	}
	if claims.ExpiresAt == nil {
		return fallbackTTL
	}
	return claims.ExpiresAt.Sub(c.now()) - expirySkew
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (c *Client) login(ctx context.Context) (string, error) {
	body, err := json.Marshal(loginRequest{Email: c.cfg.Email, Password: c.cfg.Password})
	if err != nil {
		return "", fmt.Errorf("bridge login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("bridge login: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("bridge login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bridge login: unexpected status %d", resp.StatusCode)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("bridge login: decode: %w", err)
	}
	if out.Token == "" {
		return "", errors.New("bridge login: empty token")
	}
	return out.Token, nil
}

func (c *Client) fetchBookings(ctx context.Context, token, shopPublicID string) (json.RawMessage, error) {
	endpoint := c.cfg.BaseURL + "/api/barbershops/" + url.PathEscape(shopPublicID) + "/bookings"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("bridge bookings: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge bookings: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errUnauthorized
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("bridge bookings: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bridge bookings: read: %w", err)
	}
	if !json.Valid(raw) {
		return nil, errors.New("bridge bookings: invalid json payload")
	}
	return raw, nil
}
