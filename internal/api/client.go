package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"

	"tattletale/internal/config"
	"tattletale/internal/constants"
)

// Client talks to the Hi-Rez (Smite) API. All calls issued through one
// client share its pacer and its lazily created session token, so the
// client is safe for concurrent use.
type Client struct {
	devID   string
	authKey string
	baseURL string

	client *fasthttp.Client
	pacer  *Pacer
	logger zerolog.Logger

	// now is swapped out in tests.
	now func() time.Time

	sessionMu sync.RWMutex
	sessionID string
	sessionSF singleflight.Group
}

func New(cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	if cfg.DevID == "" || cfg.AuthKey == "" {
		return nil, ErrMissingCredentials
	}

	httpClient := &fasthttp.Client{
		MaxConnsPerHost:     100,
		ReadTimeout:         constants.ExternalAPITimeout,
		WriteTimeout:        constants.ExternalAPITimeout,
		MaxIdleConnDuration: 1 * time.Minute,
	}
	if !cfg.TLSVerify {
		httpClient.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		logger.Warn().Msg("TLS verification disabled")
	}

	return &Client{
		devID:   cfg.DevID,
		authKey: cfg.AuthKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  httpClient,
		pacer:   NewPacer(cfg.PaceInterval),
		logger:  logger.With().Str("component", "api").Logger(),
		now:     time.Now,
	}, nil
}

// Ping hits the API health endpoint. It needs no signature or session.
func (c *Client) Ping(ctx context.Context) (string, error) {
	status, body, err := c.get(ctx, c.baseURL+"/pingjson")
	if err != nil {
		return "", fmt.Errorf("failed to ping api: %w", err)
	}
	if status != fasthttp.StatusOK {
		return "", &APIError{Method: "ping", StatusCode: status}
	}
	return string(body), nil
}

// GetPlayer fetches a player's profile. An empty slice means the player does
// not exist.
func (c *Client) GetPlayer(ctx context.Context, name string) ([]PlayerProfile, error) {
	return call[PlayerProfile](ctx, c, "getplayer", name)
}

// GetQueueStats fetches the player's per-god statistics for one queue.
func (c *Client) GetQueueStats(ctx context.Context, name string, queueID int) ([]QueueStat, error) {
	return call[QueueStat](ctx, c, "getqueuestats", name, strconv.Itoa(queueID))
}

// GetMatchHistory fetches the player's recent matches across all queues,
// most recent first.
func (c *Client) GetMatchHistory(ctx context.Context, name string) ([]Match, error) {
	return call[Match](ctx, c, "getmatchhistory", name)
}

// Call invokes a signed, paced, session-scoped API method and returns the
// raw JSON body.
func (c *Client) Call(ctx context.Context, method string, args ...string) ([]byte, error) {
	if _, err := c.ensureSession(ctx); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return c.invoke(ctx, method, args...)
}

func call[T any](ctx context.Context, c *Client, method string, args ...string) ([]T, error) {
	body, err := c.Call(ctx, method, args...)
	if err != nil {
		return nil, err
	}

	var result []T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return result, nil
}

// ensureSession returns the active session token, creating it on first use.
// Concurrent first-time callers collapse onto a single createsession call;
// a failed creation leaves the token unset so a later call retries.
func (c *Client) ensureSession(ctx context.Context) (string, error) {
	if session := c.session(); session != "" {
		return session, nil
	}

	v, err, _ := c.sessionSF.Do("createsession", func() (interface{}, error) {
		// A racing caller may have stored the token before we were queued.
		if session := c.session(); session != "" {
			return session, nil
		}

		body, err := c.invoke(ctx, "createsession")
		if err != nil {
			return nil, err
		}

		var resp sessionResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to decode createsession response: %w", err)
		}
		if resp.SessionID == "" {
			return nil, fmt.Errorf("createsession response has no session_id (ret_msg: %s)", resp.RetMsg)
		}

		c.sessionMu.Lock()
		c.sessionID = resp.SessionID
		c.sessionMu.Unlock()

		c.logger.Debug().Msg("session created")
		return resp.SessionID, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) session() string {
	c.sessionMu.RLock()
	defer c.sessionMu.RUnlock()
	return c.sessionID
}

// invoke performs one paced, signed request. The pacer wait suspends only
// this caller and is abandoned when ctx is cancelled.
func (c *Client) invoke(ctx context.Context, method string, args ...string) ([]byte, error) {
	if err := c.pause(ctx); err != nil {
		return nil, err
	}

	timestamp := c.now().UTC().Format(constants.APITimestampLayout)
	sig := signature(c.devID, c.authKey, method, timestamp)

	var url strings.Builder
	fmt.Fprintf(&url, "%s/%sjson/%s/%s/", c.baseURL, method, c.devID, sig)
	if session := c.session(); session != "" {
		url.WriteString(session)
		url.WriteByte('/')
	}
	url.WriteString(timestamp)
	for _, arg := range args {
		url.WriteByte('/')
		url.WriteString(arg)
	}

	start := time.Now()
	status, body, err := c.get(ctx, url.String())
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Msg("api request failed")
		return nil, fmt.Errorf("failed to call %s: %w", method, err)
	}

	c.logger.Debug().
		Str("method", method).
		Int("status", status).
		Dur("duration", time.Since(start)).
		Msg("api request completed")

	if status != fasthttp.StatusOK {
		return nil, &APIError{Method: method, StatusCode: status}
	}
	return body, nil
}

// pause honors the pacer's wait for the next dispatch slot.
func (c *Client) pause(ctx context.Context) error {
	wait := c.pacer.Schedule(c.now())
	if wait <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) get(ctx context.Context, url string) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return 0, nil, err
	}

	body := append([]byte(nil), resp.Body()...)
	return resp.StatusCode(), body, nil
}
