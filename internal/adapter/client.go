// Package adapter integrates scriptum with external services. Its only
// inhabitant today is the HTTP client for the remote Vigenère REST service,
// an alternative to spawning the cipher script locally.
package adapter

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"scriptum/internal/logger"
)

// ClientConfig holds the remote Vigenère service settings.
type ClientConfig struct {
	// BaseURL is the API root, e.g. "http://localhost:5000/api".
	BaseURL string
	// Timeout bounds every single request.
	Timeout time.Duration
}

// Client talks to the remote Vigenère REST service. All calls are JSON over
// HTTP; the service reports failures in-band with success=false plus an
// error string.
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// NewClient constructs a [Client] with sane fallbacks for unset config.
func NewClient(cfg ClientConfig, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:5000/api"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &Client{http: cli, log: log}
}

type textRequest struct {
	Text string `json:"text"`
	Key  string `json:"key"`
}

type fileRequest struct {
	Content  string `json:"content"`
	Key      string `json:"key"`
	Filename string `json:"filename"`
	Base64   bool   `json:"base64"`
}

type apiResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
	Error   string `json:"error"`
}

// Health verifies that the API is reachable and answering.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %s", ErrRemoteUnavailable, resp.Status())
	}
	return nil
}

// EncryptText ciphers text under key via the /encrypt endpoint.
func (c *Client) EncryptText(ctx context.Context, text, key string) (string, error) {
	return c.postJSON(ctx, "/encrypt", textRequest{Text: text, Key: key})
}

// DecryptText deciphers text under key via the /decrypt endpoint.
func (c *Client) DecryptText(ctx context.Context, text, key string) (string, error) {
	return c.postJSON(ctx, "/decrypt", textRequest{Text: text, Key: key})
}

// EncryptFile ciphers whole-file content. The content travels base64-encoded
// so arbitrary text survives the JSON transport unmangled.
func (c *Client) EncryptFile(ctx context.Context, content, key, filename string) (string, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	return c.postJSON(ctx, "/encrypt-file", fileRequest{
		Content:  encoded,
		Key:      key,
		Filename: filename,
		Base64:   true,
	})
}

// DecryptFile deciphers whole-file content previously produced by
// EncryptFile.
func (c *Client) DecryptFile(ctx context.Context, content, key, filename string) (string, error) {
	return c.postJSON(ctx, "/decrypt-file", fileRequest{
		Content:  content,
		Key:      key,
		Filename: filename,
	})
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (string, error) {
	var out apiResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	if !resp.IsSuccess() || !out.Success {
		msg := out.Error
		if msg == "" {
			msg = resp.Status()
		}
		c.log.Error().Str("path", path).Int("status", resp.StatusCode()).Str("error", msg).
			Msg("remote vigenere call rejected")
		return "", fmt.Errorf("%w: %s", ErrRemoteRejected, msg)
	}

	return out.Result, nil
}
