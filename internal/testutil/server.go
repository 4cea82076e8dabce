package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nhle/portfolio/internal/model"
)

// Request is one call recorded by the fake API server.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Body      map[string]any
}

// APIServer is an in-memory implementation of the /api/projects contract
// backed by httptest. FailNext makes the next request answer with the
// given status.
type APIServer struct {
	*httptest.Server

	mu       sync.Mutex
	projects []model.Project
	nextID   int
	requests []Request
	failNext int
}

// NewAPIServer starts a fake projects API seeded with projects and stops
// it when the test completes.
func NewAPIServer(t *testing.T, projects ...model.Project) *APIServer {
	t.Helper()

	s := &APIServer{projects: projects, nextID: len(projects) + 1}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// FailNext makes the next request fail with status.
func (s *APIServer) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = status
}

// Requests returns a copy of the recorded requests.
func (s *APIServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Projects returns a copy of the stored projects.
func (s *APIServer) Projects() []model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

func (s *APIServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		RequestID: r.Header.Get("X-Request-Id"),
	}
	var raw []byte
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		raw, _ = json.Marshal(rec.Body)
	}
	s.requests = append(s.requests, rec)

	if s.failNext != 0 {
		status := s.failNext
		s.failNext = 0
		writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
		return
	}

	id, hasID := strings.CutPrefix(r.URL.Path, "/api/projects/")
	switch {
	case r.URL.Path == "/api/projects" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, s.projects)

	case r.URL.Path == "/api/projects" && r.Method == http.MethodPost:
		var in model.ProjectInput
		if err := json.Unmarshal(raw, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		now := time.Now().UTC().Truncate(time.Second)
		p := fromInput(strconv.Itoa(s.nextID), in)
		p.CreatedAt = &now
		s.nextID++
		s.projects = append(s.projects, p)
		writeJSON(w, http.StatusCreated, p)

	case hasID && r.Method == http.MethodGet:
		if i := s.indexOf(id); i >= 0 {
			writeJSON(w, http.StatusOK, s.projects[i])
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Project not found"})

	case hasID && r.Method == http.MethodPatch:
		i := s.indexOf(id)
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Project not found"})
			return
		}
		var in model.ProjectInput
		if err := json.Unmarshal(raw, &in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		p := fromInput(id, in)
		p.CreatedAt = s.projects[i].CreatedAt
		s.projects[i] = p
		writeJSON(w, http.StatusOK, p)

	case hasID && r.Method == http.MethodDelete:
		i := s.indexOf(id)
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Project not found"})
			return
		}
		s.projects = append(s.projects[:i], s.projects[i+1:]...)
		w.WriteHeader(http.StatusNoContent)

	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (s *APIServer) indexOf(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func fromInput(id string, in model.ProjectInput) model.Project {
	return model.Project{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		Technologies: in.Technologies,
		DownloadURL:  in.DownloadURL,
		GithubURL:    in.GithubURL,
		LiveURL:      in.LiveURL,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
