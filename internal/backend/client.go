package backend

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

	"hr-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Doer adalah kontrak minimal yang dipakai service dashboard terhadap backend HR.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body Body, out any) error
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// HTTPError membawa status dan pesan dari backend HR apa adanya.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("backend: http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) UpstreamStatus() int { return e.StatusCode }

func (e *HTTPError) UpstreamMessage() string {
	if strings.TrimSpace(e.Message) == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Message
}

// TransportError dipakai ketika backend tidak bisa dihubungi sama sekali.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "backend: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) UpstreamStatus() int { return http.StatusBadGateway }

func (e *TransportError) UpstreamMessage() string {
	return "Backend HR tidak dapat dihubungi"
}

func New(baseURL string, timeout time.Duration, logger ...*zap.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend: missing base url")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.New("backend: invalid base url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("backend: invalid base url scheme")
	}
	if u.Host == "" {
		return nil, errors.New("backend: invalid base url host")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	l := zap.L().Named("backend.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backend.client")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     l,
	}, nil
}

type envelope struct {
	Message string          `json:"message"`
	Results json.RawMessage `json:"results"`
}

// Do mengirim request ke backend dengan bearer token dari context dan men-decode
// field "results" ke out (jika out tidak nil).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body Body, out any) error {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		r, ct, err := body.Encode()
		if err != nil {
			return err
		}
		reader, contentType = r, ct
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := contextutil.GetToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(started)),
	)

	if resp.StatusCode/100 != 2 {
		return readHTTPError(resp)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("backend: decode %s: %w", path, err)
	}
	if len(env.Results) == 0 || bytes.Equal(env.Results, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(env.Results, out); err != nil {
		return fmt.Errorf("backend: decode results %s: %w", path, err)
	}
	return nil
}

func readHTTPError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return &HTTPError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
}

// List mengambil satu halaman data dari endpoint list milik backend.
func List[T any](ctx context.Context, d Doer, path string, q ListQuery) (Page[T], error) {
	var page Page[T]
	if err := d.Do(ctx, http.MethodGet, path, q.Values(), nil, &page); err != nil {
		return Page[T]{}, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}

// Get mengambil satu resource (results berisi objek tunggal).
func Get[T any](ctx context.Context, d Doer, path string) (T, error) {
	var out T
	err := d.Do(ctx, http.MethodGet, path, nil, nil, &out)
	return out, err
}
