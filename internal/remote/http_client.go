package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mkravets/sayright/internal/logger"
	"github.com/mkravets/sayright/models"
)

// HTTPClientConfig configures the REST document store client.
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpDocumentStore struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPDocumentStore constructs a [Client] speaking the REST + websocket
// protocol of the sync server.
func NewHTTPDocumentStore(cfg HTTPClientConfig, log *logger.Logger) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpDocumentStore{client: cli, logger: log}
}

func (h *httpDocumentStore) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpDocumentStore) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpDocumentStore) Get(ctx context.Context, ref DocumentRef) (Snapshot, error) {
	const op = "remote.Get"

	resp, err := h.authedRequest(ctx).Get(docPath(ref))
	if err != nil {
		return Snapshot{}, mapTransportError(op, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return Snapshot{Exists: false}, nil
	}
	if err = mapHTTPError(op, resp); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err = json.Unmarshal(resp.Body(), &snap); err != nil {
		return Snapshot{}, NewError(CodeInternal, op, fmt.Errorf("decode snapshot: %w", err))
	}
	snap.Exists = true

	return snap, nil
}

func (h *httpDocumentStore) SetMerge(ctx context.Context, ref DocumentRef, fields map[string]json.RawMessage) error {
	const op = "remote.SetMerge"

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Patch(docPath(ref))
	if err != nil {
		return mapTransportError(op, err)
	}

	return mapHTTPError(op, resp)
}

func (h *httpDocumentStore) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func docPath(ref DocumentRef) string {
	return fmt.Sprintf("/api/docs/%s/%s", ref.Collection, ref.DocID)
}

// mapTransportError wraps a resty transport failure into a coded error.
// Request-level failures (connection refused, DNS, timeout) are transient;
// a rejection by a local content filter is terminal and tagged as such.
func mapTransportError(op string, err error) error {
	if IsBlockedByClient(err) {
		return NewError(CodeBlockedByClient, op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(CodeDeadlineExceeded, op, err)
	}
	return NewError(CodeUnavailable, op, err)
}

// mapHTTPError converts a non-2xx response into a coded error. The status
// mapping mirrors the server's error contract.
func mapHTTPError(op string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}
	cause := fmt.Errorf("http %d: %s", code, body)

	switch {
	case code == http.StatusUnauthorized:
		return NewError(CodeUnauthenticated, op, cause)
	case code == http.StatusForbidden:
		return NewError(CodePermissionDenied, op, cause)
	case code == http.StatusNotFound:
		return NewError(CodeNotFound, op, cause)
	case code == http.StatusConflict:
		return NewError(CodeAborted, op, cause)
	case code == http.StatusBadRequest:
		return NewError(CodeInvalidArgument, op, cause)
	case code == http.StatusTooManyRequests:
		return NewError(CodeResourceExhausted, op, cause)
	case code == http.StatusServiceUnavailable, code == http.StatusBadGateway, code == http.StatusGatewayTimeout:
		return NewError(CodeUnavailable, op, cause)
	case code >= http.StatusInternalServerError:
		return NewError(CodeInternal, op, cause)
	default:
		return NewError(CodeUnknown, op, cause)
	}
}

// Register creates a new account and stores the issued bearer token for
// subsequent requests.
func (h *httpDocumentStore) Register(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "/api/auth/register", user)
}

// Login authenticates an existing account and stores the issued bearer token.
func (h *httpDocumentStore) Login(ctx context.Context, user models.User) (models.Token, error) {
	return h.authenticate(ctx, "/api/auth/login", user)
}

func (h *httpDocumentStore) authenticate(ctx context.Context, path string, user models.User) (models.Token, error) {
	op := "remote" + strings.ReplaceAll(path, "/api/auth", "")

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post(path)
	if err != nil {
		return models.Token{}, mapTransportError(op, err)
	}
	if err = mapHTTPError(op, resp); err != nil {
		return models.Token{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, NewError(CodeInternal, op, fmt.Errorf("parse bearer token: %w", err))
	}

	h.SetToken(token)
	return models.Token{SignedString: token}, nil
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
