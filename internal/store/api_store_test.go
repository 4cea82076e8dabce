package store_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/store"
	"github.com/nhle/portfolio/internal/testutil"
)

func ptr(s string) *string { return &s }

func newStore(t *testing.T, projects ...model.Project) (*store.APIStore, *testutil.APIServer) {
	t.Helper()
	srv := testutil.NewAPIServer(t, projects...)
	return store.NewAPIStore(srv.URL+"/", 5*time.Second), srv
}

func TestListProjects(t *testing.T) {
	s, srv := newStore(t,
		model.Project{ID: "b", Title: "Second", Description: "d", Technologies: []string{"Go"}},
		model.Project{ID: "a", Title: "First", Description: "d", Technologies: []string{}},
	)

	got, err := s.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "server order is kept")
	assert.Equal(t, []string{"Go"}, got[0].Technologies)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/api/projects", reqs[0].Path)
	assert.NotEmpty(t, reqs[0].RequestID)
}

func TestListProjectsEmpty(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.ListProjects(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCreateProject(t *testing.T) {
	s, srv := newStore(t)

	in := model.Draft{Title: "X", Description: "Y"}.Input([]string{"A", "B"})
	got, err := s.CreateProject(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
	assert.NotNil(t, got.CreatedAt)
	assert.Equal(t, []string{"A", "B"}, got.Technologies)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	body := reqs[0].Body
	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "createdAt")
	assert.NotContains(t, body, "githubUrl")
	assert.Equal(t, []any{"A", "B"}, body["technologies"])
}

func TestUpdateProject(t *testing.T) {
	s, srv := newStore(t, model.Project{ID: "7", Title: "Old", Description: "d"})

	in := model.ProjectInput{
		Title:        "New",
		Description:  "d",
		Technologies: []string{},
		LiveURL:      ptr("https://x.dev"),
	}
	got, err := s.UpdateProject(context.Background(), "7", in)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, "https://x.dev", model.Deref(got.LiveURL))

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPatch, reqs[0].Method)
	assert.Equal(t, "/api/projects/7", reqs[0].Path)
	assert.Equal(t, "New", reqs[0].Body["title"])
	assert.Equal(t, "d", reqs[0].Body["description"], "full representation is sent")
}

func TestGetProject(t *testing.T) {
	s, _ := newStore(t, model.Project{ID: "7", Title: "Seven", Description: "d"})

	got, err := s.GetProject(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Seven", got.Title)

	_, err = s.GetProject(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrOperationFailed)
}

func TestDeleteProject(t *testing.T) {
	s, srv := newStore(t, model.Project{ID: "7"}, model.Project{ID: "8"})

	require.NoError(t, s.DeleteProject(context.Background(), "7"))
	assert.Len(t, srv.Projects(), 1)

	reqs := srv.Requests()
	assert.Equal(t, http.MethodDelete, reqs[0].Method)
	assert.Equal(t, "/api/projects/7", reqs[0].Path)
}

func TestNonSuccessStatusIsUniformFailure(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			s, srv := newStore(t, model.Project{ID: "7"})

			srv.FailNext(status)
			_, err := s.ListProjects(context.Background())
			assert.ErrorIs(t, err, store.ErrOperationFailed)

			srv.FailNext(status)
			assert.ErrorIs(t, s.DeleteProject(context.Background(), "7"), store.ErrOperationFailed)
			assert.Len(t, srv.Projects(), 1)
		})
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	url := srv.URL
	srv.Close()

	s := store.NewAPIStore(url, time.Second)
	_, err := s.ListProjects(context.Background())
	assert.ErrorIs(t, err, store.ErrOperationFailed)
}

func TestRequestIDsAreUnique(t *testing.T) {
	s, srv := newStore(t)

	_, _ = s.ListProjects(context.Background())
	_, _ = s.ListProjects(context.Background())

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.NotEqual(t, reqs[0].RequestID, reqs[1].RequestID)
}
