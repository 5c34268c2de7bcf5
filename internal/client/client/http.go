package client

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

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) (*Session, error) {
	body := map[string]string{"name": name, "email": email, "password": string(password)}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/register", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*Session, error) {
	body := map[string]string{"email": email, "password": string(password)}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) Dashboard(ctx context.Context, token string) (*Dashboard, error) {
	var d Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", token, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) Logout(ctx context.Context, token string) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/logout", token, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		apiErr := &APIError{Status: resp.StatusCode, Message: eb.Error, Fields: eb.Errors}
		if apiErr.Message == "" {
			apiErr.Message = eb.Message
		}
		if apiErr.Message == "" && len(apiErr.Fields) == 0 {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
