package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

const (
	ShareLinkedIn = "linkedin"
	ShareX        = "x"
)

// FormatHashtag formats a tag value as a valid hashtag for social media platforms
// (X, LinkedIn). It keeps only letters, numbers, and underscores and drops
// tags that would start with a number.
func FormatHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}

	var result strings.Builder
	for _, r := range tag {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			result.WriteRune(r)
		}
	}

	formatted := strings.ToLower(result.String())
	if len(formatted) > 0 && formatted[0] >= '0' && formatted[0] <= '9' {
		return ""
	}
	return formatted
}

// GetBaseURL returns BASE_URL without a trailing slash, or "" when unset.
func GetBaseURL(cfg map[string]string) string {
	return strings.TrimSuffix(config.GetString(cfg, "BASE_URL", ""), "/")
}

// BuildProjectURL constructs the public project page URL, e.g. "https://example.com/project/{id}".
func BuildProjectURL(baseURL, projectID string) string {
	if baseURL == "" || projectID == "" {
		return ""
	}
	return fmt.Sprintf("%s/project/%s", strings.TrimSuffix(baseURL, "/"), projectID)
}

// ShareURL builds the share-intent URL for project on platform. An empty
// platform means LinkedIn; "twitter" is accepted for X.
func ShareURL(platform string, project *models.Project, baseURL string) (string, error) {
	projectURL := BuildProjectURL(baseURL, project.ID.String())

	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "", ShareLinkedIn:
		return "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(projectURL), nil
	case ShareX, "twitter":
		q := url.Values{}
		q.Set("text", project.Title)
		q.Set("url", projectURL)
		if hashtags := projectHashtags(project.Tags); len(hashtags) > 0 {
			q.Set("hashtags", strings.Join(hashtags, ","))
		}
		return "https://twitter.com/intent/tweet?" + q.Encode(), nil
	default:
		return "", errs.NewInvalidFieldError("platform", "must be linkedin or x")
	}
}

func projectHashtags(tags []models.Tag) []string {
	var hashtags []string
	seen := make(map[string]bool)
	for _, tag := range tags {
		h := FormatHashtag(tag.Name)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		hashtags = append(hashtags, h)
	}
	return hashtags
}
