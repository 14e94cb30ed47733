package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdiner/internal/client/models"
	"github.com/dmitrijs2005/gophdiner/internal/common"
	"github.com/dmitrijs2005/gophdiner/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient talks JSON over HTTP to the storefront backend. It is the single
// place where the bearer token is attached to outgoing requests.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	bearer  *bearerTransport
	log     logging.Logger
}

var (
	_ Client      = (*HTTPClient)(nil)
	_ TokenHolder = (*HTTPClient)(nil)
)

// NewHTTPClient builds a client for baseURL (e.g. "http://127.0.0.1:8080/api").
// Timeout bounds each request; zero means no client-side timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server base url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server base url %q: scheme and host are required", baseURL)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	bearer := newBearerTransport(http.DefaultTransport)
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Transport: bearer, Timeout: timeout},
		bearer:  bearer,
		log:     logger.With("component", "gateway"),
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.bearer.set(token)
}

func (c *HTTPClient) ClearToken() {
	c.bearer.set("")
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// endpoint joins already-escaped path segments onto the base URL.
func (c *HTTPClient) endpoint(query url.Values, segments ...string) *url.URL {
	u := c.baseURL.JoinPath(segments...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u
}

func (c *HTTPClient) do(ctx context.Context, method string, endpoint *url.URL, body any, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", endpoint.Path, "request_id", requestID, "error", err)
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done", "method", method, "path", endpoint.Path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeRemoteError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type healthResponse struct {
	Status string `json:"status"`
}

// Ping checks that the backend is reachable. A 2xx reply without a status
// field counts as healthy.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp healthResponse
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "health"), nil, &resp); err != nil {
		return err
	}
	if resp.Status != "" && !strings.EqualFold(resp.Status, "ok") {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	body := models.Credentials{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "login"), body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, payload models.RegisterPayload) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "auth", "register"), payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) ListMenu(ctx context.Context, search string) ([]models.MenuItem, error) {
	var q url.Values
	if s := strings.TrimSpace(search); s != "" {
		q = url.Values{"search": {s}}
	}
	var items []models.MenuItem
	if err := c.do(ctx, http.MethodGet, c.endpoint(q, "menu"), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) GetCartByOrderID(ctx context.Context, orderID string) (*models.CartDTO, error) {
	var cart models.CartDTO
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "cart", url.PathEscape(orderID)), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *HTTPClient) AddCartItem(ctx context.Context, orderID string, item models.NewCartItem) error {
	return c.do(ctx, http.MethodPost, c.endpoint(nil, "cart", url.PathEscape(orderID), "items"), item, nil)
}

type quantityUpdate struct {
	Quantity int `json:"quantity"`
}

func (c *HTTPClient) UpdateCartItemQuantity(ctx context.Context, orderID string, lineID int64, quantity int) error {
	u := c.endpoint(nil, "cart", url.PathEscape(orderID), "items", strconv.FormatInt(lineID, 10))
	return c.do(ctx, http.MethodPatch, u, quantityUpdate{Quantity: quantity}, nil)
}

func (c *HTTPClient) GetAvailableTables(ctx context.Context, q models.AvailabilityQuery) ([]models.TableCandidate, error) {
	var tables []models.TableCandidate
	if err := c.do(ctx, http.MethodGet, c.endpoint(q.Values(), "reservations", "availability"), nil, &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (c *HTTPClient) CreateReservation(ctx context.Context, r models.ReservationRequest) (*models.Reservation, error) {
	var res models.Reservation
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "reservations"), r, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
