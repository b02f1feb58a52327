package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rpupo63/blogicum-backend/errs"
)

const (
	maxTitleLength    = 256
	maxUsernameLength = 150
	maxNameLength     = 150
	maxEmailLength    = 254
	maxSlugLength     = 64
	maxImageLength    = 512
)

const fieldRequired = "This field is required."

// pubDateLayouts are tried in order. The second one is what an HTML
// datetime-local input submits.
var pubDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"}

// requireText trims value and records an error when it is empty or longer than max.
// A max of zero means unbounded.
func requireText(fields errs.FieldErrors, name, value string, max int) string {
	value = strings.TrimSpace(value)
	if value == "" {
		fields.Add(name, fieldRequired)
		return value
	}
	checkLength(fields, name, value, max)
	return value
}

func checkLength(fields errs.FieldErrors, name, value string, max int) {
	if max > 0 && utf8.RuneCountInString(value) > max {
		fields.Add(name, fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", max, utf8.RuneCountInString(value)))
	}
}

func parsePubDate(value string) (time.Time, error) {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}
