package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"

	"github.com/nhle/portfolio/internal/model"
)

const projectsPath = "/api/projects"

// RequestIDHeader carries a per-request id so client and server logs
// can be correlated.
const RequestIDHeader = "X-Request-Id"

// APIStore implements Store against the portfolio REST API.
type APIStore struct {
	client *req.Client
	logger *slog.Logger
}

// compile-time check
var _ Store = (*APIStore)(nil)

// NewAPIStore creates a store talking to the server rooted at baseURL
// (e.g. http://localhost:5000). Every request is bounded by timeout.
func NewAPIStore(baseURL string, timeout time.Duration) *APIStore {
	c := req.C().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetUserAgent("portfolio-cli").
		SetCommonHeader("Accept", "application/json")

	return &APIStore{
		client: c,
		logger: slog.Default().With("component", "store"),
	}
}

// ListProjects issues GET /api/projects.
func (s *APIStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := s.do(ctx, "list projects", s.client.R().SetSuccessResult(&projects), "GET", projectsPath); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}

// GetProject issues GET /api/projects/{id}.
func (s *APIStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	if err := s.do(ctx, "get project", s.client.R().SetSuccessResult(&p), "GET", projectPath(id)); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject issues POST /api/projects with the full input.
func (s *APIStore) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	var p model.Project
	r := s.client.R().SetBodyJsonMarshal(in).SetSuccessResult(&p)
	if err := s.do(ctx, "create project", r, "POST", projectsPath); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject issues PATCH /api/projects/{id} with the full input.
func (s *APIStore) UpdateProject(ctx context.Context, id string, in model.ProjectInput) (*model.Project, error) {
	var p model.Project
	r := s.client.R().SetBodyJsonMarshal(in).SetSuccessResult(&p)
	if err := s.do(ctx, "update project", r, "PATCH", projectPath(id)); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject issues DELETE /api/projects/{id}. Any 2xx status is success;
// the body is ignored.
func (s *APIStore) DeleteProject(ctx context.Context, id string) error {
	return s.do(ctx, "delete project", s.client.R(), "DELETE", projectPath(id))
}

// do sends r and collapses every failure into ErrOperationFailed. The
// underlying cause is only logged.
func (s *APIStore) do(ctx context.Context, op string, r *req.Request, method, path string) error {
	rid := uuid.NewString()
	r.SetContext(ctx).SetHeader(RequestIDHeader, rid)

	start := time.Now()
	resp, err := r.Send(method, path)
	latency := time.Since(start)

	if err != nil {
		s.logger.Warn("request failed",
			"op", op, "method", method, "path", path,
			"request_id", rid, "latency", latency, "error", err)
		return fmt.Errorf("%s: %w", op, ErrOperationFailed)
	}

	if !resp.IsSuccessState() {
		s.logger.Warn("unexpected status",
			"op", op, "method", method, "path", path,
			"request_id", rid, "status", resp.StatusCode, "latency", latency)
		return fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, ErrOperationFailed)
	}

	s.logger.Debug("request",
		"op", op, "method", method, "path", path,
		"request_id", rid, "status", resp.StatusCode, "latency", latency)
	return nil
}

func projectPath(id string) string {
	return projectsPath + "/" + url.PathEscape(id)
}
