// Package apiclient talks to the media API: items, channels, playlists and
// the current user's profile.
package apiclient

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

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-mediaui/pkg/edit"
	"github.com/goliatone/go-mediaui/pkg/media"
)

const maxBodyBytes = 1 << 20

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Its timeout bounds every call.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if strings.TrimSpace(key) != "" {
			c.headers.Set(key, value)
		}
	}
}

// Client is a small JSON client for the media API.
type Client struct {
	base    *url.URL
	http    *http.Client
	headers http.Header
	logger  *log.Logger
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, errors.New("apiclient: base url is required")
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("apiclient: base url %q must be absolute", trimmed)
	}

	c := &Client{
		base:    base,
		http:    http.DefaultClient,
		headers: http.Header{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// ListMedia fetches every media item visible to the user.
func (c *Client) ListMedia(ctx context.Context) ([]media.Item, error) {
	var payload struct {
		Data []media.Item `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, nil, &payload, "media"); err != nil {
		return nil, fmt.Errorf("apiclient: list media: %w", err)
	}
	return payload.Data, nil
}

// GetMedia fetches one media item.
func (c *Client) GetMedia(ctx context.Context, id string) (media.Item, error) {
	var item media.Item
	if err := c.do(ctx, http.MethodGet, nil, &item, "media", id); err != nil {
		return media.Item{}, fmt.Errorf("apiclient: get media %q: %w", id, err)
	}
	return item, nil
}

// PatchMedia sends the full item. A 400 response with an error body is
// returned as *media.ValidationError.
func (c *Client) PatchMedia(ctx context.Context, item media.Item) (media.Item, error) {
	if !item.Loaded() {
		return media.Item{}, errors.New("apiclient: patch media: item has no id")
	}
	body, err := json.Marshal(item)
	if err != nil {
		return media.Item{}, fmt.Errorf("apiclient: encode media %q: %w", item.ID, err)
	}

	var updated media.Item
	if err := c.do(ctx, http.MethodPatch, body, &updated, "media", item.ID); err != nil {
		return media.Item{}, fmt.Errorf("apiclient: patch media %q: %w", item.ID, err)
	}
	if !updated.Loaded() {
		return item, nil
	}
	return updated, nil
}

// GetChannel fetches a channel.
func (c *Client) GetChannel(ctx context.Context, id string) (media.Channel, error) {
	var channel media.Channel
	if err := c.do(ctx, http.MethodGet, nil, &channel, "channels", id); err != nil {
		return media.Channel{}, fmt.Errorf("apiclient: get channel %q: %w", id, err)
	}
	return channel, nil
}

// GetPlaylist fetches a playlist.
func (c *Client) GetPlaylist(ctx context.Context, id string) (media.Playlist, error) {
	var playlist media.Playlist
	if err := c.do(ctx, http.MethodGet, nil, &playlist, "playlists", id); err != nil {
		return media.Playlist{}, fmt.Errorf("apiclient: get playlist %q: %w", id, err)
	}
	return playlist, nil
}

// GetProfile fetches the current user's profile.
func (c *Client) GetProfile(ctx context.Context) (media.Profile, error) {
	var profile media.Profile
	if err := c.do(ctx, http.MethodGet, nil, &profile, "profile"); err != nil {
		return media.Profile{}, fmt.Errorf("apiclient: get profile: %w", err)
	}
	return profile, nil
}

// Media adapts the client to the edit controller's Loader.
func (c *Client) Media() MediaLoader {
	return MediaLoader{client: c}
}

// MediaLoader implements edit.Loader on top of a Client.
type MediaLoader struct {
	client *Client
}

var _ edit.Loader = MediaLoader{}

func (l MediaLoader) Get(ctx context.Context, id string) (media.Item, error) {
	return l.client.GetMedia(ctx, id)
}

func (l MediaLoader) Patch(ctx context.Context, item media.Item) (media.Item, error) {
	return l.client.PatchMedia(ctx, item)
}

func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}
	return c.base.JoinPath(escaped...).String()
}

func (c *Client) do(ctx context.Context, method string, body []byte, out any, segments ...string) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(segments...), reader)
	if err != nil {
		return err
	}
	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "url", req.URL.Redacted(), "err", err)
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("request rejected", "method", method, "url", req.URL.Redacted(), "status", resp.StatusCode)
		return statusError(resp.StatusCode, payload)
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// statusError turns a rejected response into an error. Any 4xx body other
// than a 404 that decodes to field or form messages is a validation failure.
func statusError(code int, payload []byte) error {
	if code >= 400 && code < 500 && code != http.StatusNotFound {
		if validation, err := media.DecodeErrorPayload(payload); err == nil {
			if len(validation.Fields) > 0 || len(validation.Form) > 0 {
				return validation
			}
		}
	}
	return &StatusError{Code: code, Body: payload}
}
