package projectform

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/portfolio/internal/editor"
	"github.com/nhle/portfolio/internal/model"
	"github.com/nhle/portfolio/internal/querycache"
	"github.com/nhle/portfolio/internal/testutil"
	"github.com/nhle/portfolio/internal/ui/toast"
)

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func typeText(m Model, s string) Model {
	for _, k := range testutil.Type(s) {
		m, _ = m.Update(k)
	}
	return m
}

func focusTech(m Model) Model {
	m, _ = m.setFocus(fieldTech)
	return m
}

func newCreate(t *testing.T) (Model, *testutil.FakeStore, *querycache.Cache) {
	t.Helper()
	fs := testutil.NewFakeStore()
	c := querycache.New()
	t.Cleanup(c.Close)
	return NewCreate(fs, c, 100, 40), fs, c
}

func TestEnterInTechFieldAddsWithoutSubmitting(t *testing.T) {
	m, fs, _ := newCreate(t)
	m = typeText(m, "X")
	m = focusTech(m)

	m = typeText(m, "  Go ")
	m, cmd := m.Update(testutil.Key("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"Go"}, m.Technologies())
	assert.Empty(t, m.tech.Value(), "input cleared after add")

	m = typeText(m, "Go")
	m, _ = m.Update(testutil.Key("enter"))
	assert.Equal(t, []string{"Go"}, m.Technologies())
	assert.Equal(t, "Go", m.tech.Value(), "duplicate leaves input as typed")

	assert.Empty(t, fs.Calls())
	assert.Equal(t, editor.Idle, m.State())
}

func TestBlankTechnologyIgnored(t *testing.T) {
	m, _, _ := newCreate(t)
	m = focusTech(m)
	m = typeText(m, "   ")
	m, _ = m.Update(testutil.Key("enter"))
	assert.Empty(t, m.Technologies())
}

func TestChipSelectionAndRemoval(t *testing.T) {
	fs := testutil.NewFakeStore()
	c := querycache.New()
	m := NewEdit(model.Project{ID: "7", Title: "T", Description: "D", Technologies: []string{"React", "Node", "Go"}}, fs, c, 100, 40)
	m = focusTech(m)

	// First backspace selects the last chip, the second removes it.
	m, _ = m.Update(testutil.Key("backspace"))
	assert.Equal(t, 2, m.chip)
	m, _ = m.Update(testutil.Key("backspace"))
	assert.Equal(t, []string{"React", "Node"}, m.Technologies())

	m, _ = send(m, testutil.Key("left"), testutil.Key("left"))
	assert.Equal(t, 0, m.chip)
	m, _ = m.Update(testutil.Key("backspace"))
	assert.Equal(t, []string{"Node"}, m.Technologies())

	m, _ = m.Update(testutil.Key("right"))
	assert.Equal(t, -1, m.chip)
}

func TestEmptyTitleReportsFieldErrorWithoutRequest(t *testing.T) {
	m, fs, _ := newCreate(t)
	m, _ = m.setFocus(fieldDescription)
	m = typeText(m, "Y")

	m, cmd := m.Update(testutil.Key("ctrl+s"))
	testutil.Drain(cmd)

	assert.Empty(t, fs.Calls())
	assert.Equal(t, editor.Idle, m.State())
	assert.Contains(t, m.errs, editor.FieldTitle)
	assert.Equal(t, fieldTitle, m.focus)
	assert.Contains(t, m.View(), "Title is required")
}

func TestCreateSubmitClosesForm(t *testing.T) {
	m, fs, c := newCreate(t)
	m = typeText(m, "X")
	m, _ = m.setFocus(fieldDescription)
	m = typeText(m, "Y")
	m = focusTech(m)
	m = typeText(m, "A")
	m, _ = m.Update(testutil.Key("enter"))
	m = typeText(m, "B")
	m, _ = m.Update(testutil.Key("enter"))

	m, cmd := m.Update(testutil.Key("ctrl+s"))
	assert.Equal(t, editor.Submitting, m.State())
	assert.Contains(t, m.View(), "Saving...")

	// Re-submission is suppressed while the request is outstanding.
	m2, again := m.Update(testutil.Key("ctrl+s"))
	assert.Nil(t, again)
	assert.Equal(t, editor.Submitting, m2.State())

	result, ok := testutil.Find[SubmitResultMsg](testutil.Drain(cmd))
	require.True(t, ok)
	assert.Equal(t, m.ID(), result.FormID)
	require.NoError(t, result.Err)

	calls := fs.CallsTo("create")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"A", "B"}, calls[0].Input.Technologies)
	assert.Nil(t, calls[0].Input.GithubURL)
	assert.Equal(t, 1, c.InvalidationCount(querycache.ProjectsKey))

	m, cmd = m.Update(result)
	assert.Equal(t, editor.Closed, m.State())
	msgs := testutil.Drain(cmd)
	saved, ok := testutil.Find[ProjectSavedMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, "X", saved.Project.Title)
	show, ok := testutil.Find[toast.ShowMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, editor.MsgCreated, show.Notification.Title)
}

func TestFailedUpdateKeepsFormOpenWithValues(t *testing.T) {
	p := model.Project{ID: "7", Title: "Old", Description: "Desc", Technologies: []string{"Go"}}
	fs := testutil.NewFakeStore(p)
	c := querycache.New()
	m := NewEdit(p, fs, c, 100, 40)

	m = typeText(m, " v2")
	fs.Err = errors.New("500")

	m, cmd := m.Update(testutil.Key("enter"))
	result, ok := testutil.Find[SubmitResultMsg](testutil.Drain(cmd))
	require.True(t, ok)
	require.Error(t, result.Err)
	assert.True(t, result.Notification.IsFailure())

	m, cmd = m.Update(result)
	msgs := testutil.Drain(cmd)
	_, closed := testutil.Find[ProjectSavedMsg](msgs)
	assert.False(t, closed)
	show, ok := testutil.Find[toast.ShowMsg](msgs)
	require.True(t, ok)
	assert.Equal(t, editor.MsgUpdateFailed, show.Notification.Title)

	assert.Equal(t, editor.Idle, m.State())
	assert.Equal(t, "Old v2", m.Draft().Title)
	assert.Equal(t, "Desc", m.Draft().Description)
	assert.Equal(t, []string{"Go"}, m.Technologies())
	assert.Equal(t, 0, c.InvalidationCount(querycache.ProjectKey("7")))
}

func TestResultForOtherFormIgnored(t *testing.T) {
	m, _, _ := newCreate(t)
	other, _, _ := newCreate(t)
	require.NotEqual(t, m.ID(), other.ID())

	m, cmd := m.Update(SubmitResultMsg{FormID: other.ID()})
	assert.Nil(t, cmd)
	assert.Equal(t, editor.Idle, m.State())
}

func TestEscCancels(t *testing.T) {
	m, _, _ := newCreate(t)
	_, cmd := m.Update(testutil.Key("esc"))
	assert.Equal(t, []tea.Msg{FormCancelMsg{}}, testutil.Drain(cmd))
}

func TestEditSeedsInputs(t *testing.T) {
	live := "https://x.dev"
	p := model.Project{ID: "7", Title: "T", Description: "D", LiveURL: &live}
	m := NewEdit(p, testutil.NewFakeStore(p), querycache.New(), 100, 40)

	assert.Equal(t, editor.ModeEdit, m.Mode())
	assert.Equal(t, model.Draft{Title: "T", Description: "D", LiveURL: live}, m.Draft())
	assert.Contains(t, m.View(), "Edit Project")
}
