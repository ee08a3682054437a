package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

// ParseTagNames splits a comma-separated tag field. Names are trimmed, empty
// names dropped and repeats removed, keeping the first occurrence's position.
// Matching is exact, so "Go" and "go" are distinct tags.
func ParseTagNames(raw string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		if utf8.RuneCountInString(name) > models.MaxTagNameLength {
			return nil, errs.NewInvalidFieldError("tags",
				fmt.Sprintf("tag %q exceeds %d characters", name, models.MaxTagNameLength))
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}
