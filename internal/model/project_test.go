package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestProjectJSONFieldNames(t *testing.T) {
	raw := `{
		"id": "42",
		"title": "X",
		"description": "Y",
		"technologies": ["A", "B"],
		"githubUrl": "https://github.com/me/x",
		"createdAt": "2024-05-01T10:00:00Z"
	}`

	var p Project
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "42", p.ID)
	assert.Equal(t, []string{"A", "B"}, p.Technologies)
	assert.Equal(t, "https://github.com/me/x", Deref(p.GithubURL))
	assert.Nil(t, p.LiveURL)
	require.NotNil(t, p.CreatedAt)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), p.CreatedAt.UTC())
}

func TestProjectInputOmitsAbsentURLs(t *testing.T) {
	in := Draft{Title: "X", Description: "Y", GithubURL: "  "}.Input(nil)

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"X","description":"Y","technologies":[]}`, string(b))
}

func TestCloneIsDeep(t *testing.T) {
	created := time.Now()
	p := Project{ID: "1", Technologies: []string{"Go"}, LiveURL: ptr("https://x.dev"), CreatedAt: &created}

	c := p.Clone()
	c.Technologies[0] = "Rust"
	*c.LiveURL = "https://changed.dev"

	assert.Equal(t, "Go", p.Technologies[0])
	assert.Equal(t, "https://x.dev", *p.LiveURL)
	assert.NotSame(t, p.CreatedAt, c.CreatedAt)
}

func TestLinks(t *testing.T) {
	p := Project{GithubURL: ptr("g"), DownloadURL: ptr("d"), LiveURL: ptr("")}
	assert.Equal(t, []string{"Code", "Download"}, p.Links())
	assert.Empty(t, Project{}.Links())
}

func TestNewDraft(t *testing.T) {
	assert.Equal(t, Draft{}, NewDraft(nil))

	d := NewDraft(&Project{Title: "T", Description: "D", LiveURL: ptr("https://x.dev")})
	assert.Equal(t, Draft{Title: "T", Description: "D", LiveURL: "https://x.dev"}, d)
}

func TestOptionalURL(t *testing.T) {
	assert.Nil(t, OptionalURL(""))
	assert.Nil(t, OptionalURL("   "))
	assert.Equal(t, "https://x.dev", *OptionalURL(" https://x.dev "))
}

func TestNotificationVariants(t *testing.T) {
	assert.False(t, Success("ok").IsFailure())
	assert.True(t, Failure("no").IsFailure())
	assert.False(t, Success("ok").CreatedAt.IsZero())
}
