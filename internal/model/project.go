package model

import (
	"slices"
	"strings"
	"time"
)

// Project is a portfolio entry as returned by the projects API.
// ID and CreatedAt are assigned by the server and never sent back.
type Project struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Technologies []string   `json:"technologies"`
	DownloadURL  *string    `json:"downloadUrl,omitempty"`
	GithubURL    *string    `json:"githubUrl,omitempty"`
	LiveURL      *string    `json:"liveUrl,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// ProjectInput is the body of a create or update request. Updates always
// carry the full representation, never a partial patch.
type ProjectInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	DownloadURL  *string  `json:"downloadUrl,omitempty"`
	GithubURL    *string  `json:"githubUrl,omitempty"`
	LiveURL      *string  `json:"liveUrl,omitempty"`
}

// Clone returns a deep copy so edits to the copy never leak into
// cached values.
func (p Project) Clone() Project {
	c := p
	c.Technologies = slices.Clone(p.Technologies)
	c.DownloadURL = clonePtr(p.DownloadURL)
	c.GithubURL = clonePtr(p.GithubURL)
	c.LiveURL = clonePtr(p.LiveURL)
	c.CreatedAt = clonePtr(p.CreatedAt)
	return c
}

// Links returns the labels of the links present on the project, in
// display order.
func (p Project) Links() []string {
	var links []string
	if Deref(p.GithubURL) != "" {
		links = append(links, "Code")
	}
	if Deref(p.LiveURL) != "" {
		links = append(links, "Live Demo")
	}
	if Deref(p.DownloadURL) != "" {
		links = append(links, "Download")
	}
	return links
}

// Draft holds the text fields of a project being created or edited.
// Technologies are tracked separately and merged in at submit time.
type Draft struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	GithubURL   string `json:"githubUrl" validate:"omitempty,url"`
	LiveURL     string `json:"liveUrl" validate:"omitempty,url"`
	DownloadURL string `json:"downloadUrl" validate:"omitempty,url"`
}

// NewDraft seeds a draft from p. A nil project yields a blank draft.
func NewDraft(p *Project) Draft {
	if p == nil {
		return Draft{}
	}
	return Draft{
		Title:       p.Title,
		Description: p.Description,
		GithubURL:   Deref(p.GithubURL),
		LiveURL:     Deref(p.LiveURL),
		DownloadURL: Deref(p.DownloadURL),
	}
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (d Draft) Trimmed() Draft {
	return Draft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		GithubURL:   strings.TrimSpace(d.GithubURL),
		LiveURL:     strings.TrimSpace(d.LiveURL),
		DownloadURL: strings.TrimSpace(d.DownloadURL),
	}
}

// Input builds the request body from the draft and the technology list.
// Empty URLs become absent fields.
func (d Draft) Input(technologies []string) ProjectInput {
	t := d.Trimmed()
	techs := slices.Clone(technologies)
	if techs == nil {
		techs = []string{}
	}
	return ProjectInput{
		Title:        t.Title,
		Description:  t.Description,
		Technologies: techs,
		DownloadURL:  OptionalURL(t.DownloadURL),
		GithubURL:    OptionalURL(t.GithubURL),
		LiveURL:      OptionalURL(t.LiveURL),
	}
}

// OptionalURL returns nil for blank input and a pointer to the trimmed
// value otherwise.
func OptionalURL(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
