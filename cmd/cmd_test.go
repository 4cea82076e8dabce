package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/testutil"
)

// setupEnv points the CLI at srv with a throwaway config and log file.
func setupEnv(t *testing.T, srv *testutil.APIServer) []string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PORTFOLIO_LOG_FILE", filepath.Join(dir, "portfolio.log"))
	t.Cleanup(closeLog)
	return []string{"--config", filepath.Join(dir, "config.yaml"), "--api-url", srv.URL}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		_ = deleteCmd.Flags().Set("force", "false")
		_ = configInitCmd.Flags().Set("force", "false")
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	srv := testutil.NewAPIServer(t,
		model.Project{ID: "1", Title: "Alpha", Technologies: []string{"Go"}},
		model.Project{ID: "2", Title: "Beta"},
	)
	flags := setupEnv(t, srv)

	out, err := run(t, append([]string{"list"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "Go")
}

func TestList_Empty(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	flags := setupEnv(t, srv)

	out, err := run(t, append([]string{"list"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "No projects yet.")
}

func TestList_ServerError(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	srv.FailNext(http.StatusInternalServerError)
	flags := setupEnv(t, srv)

	_, err := run(t, append([]string{"list"}, flags...)...)
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	srv := testutil.NewAPIServer(t, model.Project{ID: "7", Title: "Seven", Description: "About seven"})
	flags := setupEnv(t, srv)

	out, err := run(t, append([]string{"show", "7"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Seven")
	assert.Contains(t, out, "About seven")
}

func TestShow_NotFound(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	flags := setupEnv(t, srv)

	_, err := run(t, append([]string{"show", "404"}, flags...)...)
	assert.Error(t, err)
}

func TestDelete_Force(t *testing.T) {
	srv := testutil.NewAPIServer(t,
		model.Project{ID: "1", Title: "Keep"},
		model.Project{ID: "2", Title: "Drop"},
	)
	flags := setupEnv(t, srv)

	out, err := run(t, append([]string{"delete", "2", "--force"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Project deleted successfully!")

	remaining := srv.Projects()
	require.Len(t, remaining, 1)
	assert.Equal(t, "1", remaining[0].ID)

	reqs := srv.Requests()
	require.NotEmpty(t, reqs)
	last := reqs[len(reqs)-1]
	assert.Equal(t, http.MethodDelete, last.Method)
	assert.Equal(t, "/api/projects/2", last.Path)
}

func TestDelete_Failure(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	flags := setupEnv(t, srv)

	out, err := run(t, append([]string{"delete", "9", "-f"}, flags...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to delete project")
	assert.NotContains(t, out, "Project deleted successfully!")
}

func TestConfigInitAndPath(t *testing.T) {
	srv := testutil.NewAPIServer(t)
	flags := setupEnv(t, srv)
	path := flags[1]

	out, err := run(t, append([]string{"config", "path"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = run(t, append([]string{"config", "init"}, flags...)...)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	loaded, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, loaded.API.BaseURL)

	// A second init refuses to clobber the file.
	_, err = run(t, append([]string{"config", "init"}, flags...)...)
	assert.Error(t, err)

	_, err = run(t, append([]string{"config", "init", "--force"}, flags...)...)
	assert.NoError(t, err)
}

func stubConfirm(t *testing.T, ok bool, err error) {
	t.Helper()
	prev := confirmPrompt
	confirmPrompt = func(string) (bool, error) { return ok, err }
	t.Cleanup(func() { confirmPrompt = prev })
}

func TestDelete_Declined(t *testing.T) {
	srv := testutil.NewAPIServer(t, model.Project{ID: "1", Title: "Keep"})
	flags := setupEnv(t, srv)
	stubConfirm(t, false, nil)

	_, err := run(t, append([]string{"delete", "1"}, flags...)...)
	require.ErrorIs(t, err, errDeleteCancelled)
	assert.Len(t, srv.Projects(), 1)
}

func TestDelete_AbortedPromptIsCancel(t *testing.T) {
	srv := testutil.NewAPIServer(t, model.Project{ID: "1", Title: "Keep"})
	flags := setupEnv(t, srv)
	stubConfirm(t, false, huh.ErrUserAborted)

	_, err := run(t, append([]string{"delete", "1"}, flags...)...)
	require.ErrorIs(t, err, errDeleteCancelled)
	assert.Len(t, srv.Projects(), 1)
}

func TestDelete_PromptErrorIsReported(t *testing.T) {
	srv := testutil.NewAPIServer(t, model.Project{ID: "1", Title: "Keep"})
	flags := setupEnv(t, srv)
	ttyErr := errors.New("open /dev/tty: no such device or address")
	stubConfirm(t, false, ttyErr)

	_, err := run(t, append([]string{"delete", "1"}, flags...)...)
	require.ErrorIs(t, err, ttyErr)
	assert.NotErrorIs(t, err, errDeleteCancelled)
	assert.Len(t, srv.Projects(), 1)
}

func TestDelete_Confirmed(t *testing.T) {
	srv := testutil.NewAPIServer(t, model.Project{ID: "1", Title: "Drop"})
	flags := setupEnv(t, srv)
	stubConfirm(t, true, nil)

	out, err := run(t, append([]string{"delete", "1"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Project deleted successfully!")
	assert.Empty(t, srv.Projects())
}
