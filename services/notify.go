package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

// CommentNotifier tells the site owner about new comments. Implementations
// must not fail the caller; errors are logged.
type CommentNotifier interface {
	NotifyNewComment(ctx context.Context, project *models.Project, comment *models.Comment)
}

type adminEmailLister interface {
	AdminEmails(ctx context.Context) ([]string, error)
}

// OwnerNotifier emails OWNER_EMAIL (or every admin when unset) and, when
// OWNER_PHONE is set and a texter is available, sends an SMS as well.
type OwnerNotifier struct {
	mailer     Mailer
	texter     Texter
	admins     adminEmailLister
	ownerEmail string
	ownerPhone string
	baseURL    string
}

func NewOwnerNotifier(cfg map[string]string, admins adminEmailLister, mailer Mailer, texter Texter) *OwnerNotifier {
	return &OwnerNotifier{
		mailer:     mailer,
		texter:     texter,
		admins:     admins,
		ownerEmail: config.GetString(cfg, "OWNER_EMAIL", ""),
		ownerPhone: config.GetString(cfg, "OWNER_PHONE", ""),
		baseURL:    GetBaseURL(cfg),
	}
}

func (n *OwnerNotifier) NotifyNewComment(ctx context.Context, project *models.Project, comment *models.Comment) {
	logger := log.With().Str("projectID", project.ID.String()).Str("commentID", comment.ID.String()).Logger()

	if n.mailer != nil {
		recipients, err := n.recipients(ctx)
		switch {
		case err != nil:
			logger.Error().Err(err).Msg("Failed to resolve comment notification recipients")
		case len(recipients) == 0:
			logger.Warn().Msg("No recipients for comment notification")
		default:
			subject := fmt.Sprintf("New comment on your project: %s", project.Title)
			if err := n.mailer.Send(ctx, recipients, subject, n.emailBody(project, comment)); err != nil {
				logger.Error().Err(err).Msg("Failed to send comment notification email")
			} else {
				logger.Info().Msg("Notification email sent")
			}
		}
	}

	if n.texter != nil && n.ownerPhone != "" {
		body := fmt.Sprintf("New comment by %s on %q: %s", commentAuthor(comment), project.Title, truncate(comment.Content, 100))
		if err := n.texter.Send(ctx, n.ownerPhone, body); err != nil {
			logger.Error().Err(err).Msg("Failed to send comment notification SMS")
		}
	}
}

func (n *OwnerNotifier) recipients(ctx context.Context) ([]string, error) {
	if n.ownerEmail != "" {
		return []string{n.ownerEmail}, nil
	}
	return n.admins.AdminEmails(ctx)
}

func (n *OwnerNotifier) emailBody(project *models.Project, comment *models.Comment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You have received a new comment on your project %q.\n\n", project.Title)
	if comment.User != nil {
		fmt.Fprintf(&b, "Comment by: %s (%s)\n", comment.User.Username, comment.User.Email)
	}
	fmt.Fprintf(&b, "Comment: %s\n\n", comment.Content)
	if n.baseURL != "" {
		fmt.Fprintf(&b, "Project URL: %s\n", BuildProjectURL(n.baseURL, project.ID.String()))
		fmt.Fprintf(&b, "Admin Dashboard: %s/admin\n", strings.TrimSuffix(n.baseURL, "/"))
	}
	return b.String()
}

func commentAuthor(comment *models.Comment) string {
	if comment.User != nil {
		return comment.User.Username
	}
	return "a visitor"
}

// truncate cuts text to at most length runes on a word boundary and appends "...".
func truncate(text string, length int) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	cut := string(runes[:length])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
