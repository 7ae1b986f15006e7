package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "github.com/ItsmeMIGUEL/sample-crud-app/internal/domain/user"
	apperrors "github.com/ItsmeMIGUEL/sample-crud-app/pkg/errors"
)

// Client is the gateway to the remote user directory. Each method
// performs exactly one round trip against the fixed base URL with the
// configured timeout. The client holds no mutable state and is safe to
// share. No retries are performed here; retry policy belongs to the
// caller.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
}

// New creates a directory API client.
func New(opts Options, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		log:     log,
	}
}

// List fetches every user in the directory.
func (c *Client) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, "list users", http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create persists a new user. The id field of the argument is ignored;
// the server assigns one and returns it on the created record.
func (c *Client) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	body := createBody{
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Website:  u.Website,
		Company:  u.Company,
		Address:  u.Address,
	}
	var created domain.User
	if err := c.do(ctx, "create user", http.MethodPost, "/users", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the user with the given id and returns the server's
// view of the updated record.
func (c *Client) Update(ctx context.Context, id int64, u domain.User) (*domain.User, error) {
	var updated domain.User
	path := fmt.Sprintf("/users/%d", id)
	if err := c.do(ctx, "update user", http.MethodPut, path, u, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the user with the given id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/users/%d", id)
	return c.do(ctx, "delete user", http.MethodDelete, path, nil, nil)
}

// createBody is the create request payload: a User without the id
// field, which is server-assigned.
type createBody struct {
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Website  string         `json:"website"`
	Company  domain.Company `json:"company"`
	Address  domain.Address `json:"address"`
}

// do performs a single JSON round trip. Any network failure, timeout,
// or non-2xx status collapses into a TransportError named after the
// operation.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewTransportError(op, 0, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewTransportError(op, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("directory request failed", zap.String("op", op), zap.Error(err))
		return apperrors.NewTransportError(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("directory request rejected",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode))
		return apperrors.NewTransportError(op, resp.StatusCode, nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewTransportError(op, 0, err)
	}
	return nil
}
