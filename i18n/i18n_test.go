package i18n

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"cookie wins", "pt", "en-US,en;q=0.9", "pt"},
		{"unknown cookie ignored", "fr", "pt-BR,pt;q=0.8", "pt"},
		{"header english", "", "en-GB", "en"},
		{"header brazilian portuguese", "", "pt-BR", "pt"},
		{"weighted header", "", "de;q=0.9,pt;q=0.8", "pt"},
		{"nothing", "", "", "en"},
		{"unsupported only", "", "ja", "en"},
		{"garbage header", "", ";;;", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.cookie, tt.header); got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.cookie, tt.header, got, tt.want)
			}
		})
	}
}

func TestT(t *testing.T) {
	if got := T("pt", "project_liked"); got != "Projeto curtido!" {
		t.Errorf("unexpected portuguese message %q", got)
	}
	if got := T("en", "project_unliked"); got != "Project unliked" {
		t.Errorf("unexpected english message %q", got)
	}
	if got := T("fr", "project_liked"); got != "Project liked!" {
		t.Errorf("expected english fallback, got %q", got)
	}
	if got := T("en", "missing_key"); got != "missing_key" {
		t.Errorf("expected key fallback, got %q", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range messages[English] {
		if _, ok := messages[Portuguese][key]; !ok {
			t.Errorf("portuguese catalog is missing %q", key)
		}
	}
}
