package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
)

func testComment(project *models.Project) *models.Comment {
	return &models.Comment{
		ID:        uuid.New(),
		Content:   "Really nice work on this one",
		ProjectID: project.ID,
		User:      &models.User{Username: "carol", Email: "c@x.io"},
	}
}

func TestOwnerNotifier_Recipients(t *testing.T) {
	ctx := context.Background()
	project := &models.Project{ID: uuid.New(), Title: "Site"}

	admins := newFakeUsers()
	admins.Create(ctx, &models.User{Username: "root", Email: "root@x.io", IsAdmin: true})
	admins.Create(ctx, &models.User{Username: "guest", Email: "guest@x.io"})

	tests := []struct {
		name string
		cfg  map[string]string
		want string
	}{
		{"owner email wins", map[string]string{"OWNER_EMAIL": "me@x.io"}, "me@x.io"},
		{"falls back to admins", map[string]string{}, "root@x.io"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{}
			NewOwnerNotifier(tt.cfg, admins, mailer, nil).NotifyNewComment(ctx, project, testComment(project))
			if len(mailer.sent) != 1 {
				t.Fatalf("sent %d emails, want 1", len(mailer.sent))
			}
			if got := strings.Join(mailer.sent[0].recipients, ","); got != tt.want {
				t.Errorf("recipients = %q, want %q", got, tt.want)
			}
			if mailer.sent[0].subject != "New comment on your project: Site" {
				t.Errorf("subject = %q", mailer.sent[0].subject)
			}
		})
	}
}

func TestOwnerNotifier_EmailBodyAndSMS(t *testing.T) {
	ctx := context.Background()
	project := &models.Project{ID: uuid.New(), Title: "Site"}
	mailer := &fakeMailer{}
	texter := &fakeTexter{}
	cfg := map[string]string{"OWNER_EMAIL": "me@x.io", "OWNER_PHONE": "+15550001", "BASE_URL": "https://me.dev/"}

	NewOwnerNotifier(cfg, newFakeUsers(), mailer, texter).NotifyNewComment(ctx, project, testComment(project))

	body := mailer.sent[0].body
	for _, want := range []string{"carol (c@x.io)", "Really nice work", "https://me.dev/project/" + project.ID.String(), "https://me.dev/admin"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if len(texter.to) != 1 || texter.to[0] != "+15550001" {
		t.Fatalf("sms recipients = %v", texter.to)
	}
	if !strings.Contains(texter.body[0], "carol") {
		t.Errorf("sms body = %q", texter.body[0])
	}
}

func TestOwnerNotifier_NoPhoneNoSMS(t *testing.T) {
	project := &models.Project{ID: uuid.New(), Title: "Site"}
	texter := &fakeTexter{}
	NewOwnerNotifier(map[string]string{}, newFakeUsers(), nil, texter).NotifyNewComment(context.Background(), project, testComment(project))
	if len(texter.to) != 0 {
		t.Errorf("sent sms without OWNER_PHONE: %v", texter.to)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"hello wonderful world", 12, "hello..."},
		{"abcdefghij", 4, "abcd..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestResendMailer_Send(t *testing.T) {
	var got resendEmailRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email_123"}`))
	}))
	defer srv.Close()

	mailer := NewResendMailer(map[string]string{"RESEND_API_KEY": "re_test", "RESEND_FROM_EMAIL": "site@me.dev"})
	if mailer == nil {
		t.Fatal("NewResendMailer returned nil with full config")
	}
	mailer.endpoint = srv.URL

	if err := mailer.Send(context.Background(), []string{"a@x.io"}, "Hi", "Body text"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if auth != "Bearer re_test" {
		t.Errorf("Authorization = %q", auth)
	}
	if got.From != "site@me.dev" || got.Subject != "Hi" || got.Text != "Body text" || len(got.To) != 1 {
		t.Errorf("request = %+v", got)
	}
}

func TestResendMailer_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	mailer := NewResendMailer(map[string]string{"RESEND_API_KEY": "re_test", "RESEND_FROM_EMAIL": "bad"})
	mailer.endpoint = srv.URL

	err := mailer.Send(context.Background(), []string{"a@x.io"}, "Hi", "Body")
	if !errs.IsExternalServiceError(err) {
		t.Fatalf("got %v, want external service error", err)
	}
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || !strings.Contains(apiErr.GetFullError(), "invalid from address") {
		t.Errorf("cause not kept: %v", err)
	}

	if err := mailer.Send(context.Background(), nil, "Hi", "Body"); err == nil {
		t.Error("send without recipients should fail")
	}
	if NewResendMailer(map[string]string{"RESEND_API_KEY": "re_test"}) != nil {
		t.Error("mailer without a from address should be disabled")
	}
}

func TestShareURL(t *testing.T) {
	project := &models.Project{
		ID:    uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		Title: "My Site",
		Tags:  []models.Tag{{Name: "Go"}, {Name: "go"}, {Name: "3d"}, {Name: "Web Dev"}},
	}
	projectURL := "https://me.dev/project/11111111-2222-3333-4444-555555555555"

	linkedin, err := ShareURL("", project, "https://me.dev/")
	if err != nil {
		t.Fatalf("ShareURL linkedin: %v", err)
	}
	if linkedin != "https://www.linkedin.com/sharing/share-offsite/?url="+url.QueryEscape(projectURL) {
		t.Errorf("linkedin = %s", linkedin)
	}

	for _, platform := range []string{"x", "Twitter"} {
		link, err := ShareURL(platform, project, "https://me.dev")
		if err != nil {
			t.Fatalf("ShareURL %s: %v", platform, err)
		}
		u, err := url.Parse(link)
		if err != nil {
			t.Fatalf("parse %s: %v", link, err)
		}
		q := u.Query()
		if u.Host != "twitter.com" || q.Get("text") != "My Site" || q.Get("url") != projectURL || q.Get("hashtags") != "go,webdev" {
			t.Errorf("%s link = %s", platform, link)
		}
	}

	if _, err := ShareURL("myspace", project, "https://me.dev"); fieldOf(err) != "platform" {
		t.Errorf("unknown platform: got %v", err)
	}
}

func TestFormatHashtag(t *testing.T) {
	tests := map[string]string{
		"Go":         "go",
		" Web Dev ":  "webdev",
		"C++":        "c",
		"machine_ml": "machine_ml",
		"3D":         "",
		"":           "",
	}
	for in, want := range tests {
		if got := FormatHashtag(in); got != want {
			t.Errorf("FormatHashtag(%q) = %q, want %q", in, got, want)
		}
	}
}
