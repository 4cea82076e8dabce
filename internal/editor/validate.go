package editor

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/portfolio/internal/model"
)

// Field names as they appear on the wire; FieldErrors is keyed by them.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldGithubURL   = "githubUrl"
	FieldLiveURL     = "liveUrl"
	FieldDownloadURL = "downloadUrl"
)

var fieldLabels = map[string]string{
	FieldTitle:       "Title",
	FieldDescription: "Description",
	FieldGithubURL:   "GitHub URL",
	FieldLiveURL:     "Live demo URL",
	FieldDownloadURL: "Download URL",
}

// FieldErrors maps a field name to a human-readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fe[k])
	}
	return "invalid project: " + strings.Join(parts, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateDraft checks the trimmed draft. Title and description are
// required; URL fields are checked only when non-empty. Technologies are
// not part of the draft and are never validated here.
func ValidateDraft(d model.Draft) FieldErrors {
	err := getValidator().Struct(d.Trimmed())
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		label := fieldLabels[fe.Field()]
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = fmt.Sprintf("%s is required", label)
		case "url":
			out[fe.Field()] = fmt.Sprintf("%s must be a valid URL", label)
		default:
			out[fe.Field()] = fmt.Sprintf("%s is invalid", label)
		}
	}
	return out
}
