package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel(): they use t.Setenv()
//   and swap the package-level IsInContainer variable.

import (
	"path/filepath"
	"strings"
	"testing"
)

func stubContainer(t *testing.T, inContainer bool) {
	t.Helper()

	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return inContainer }
}

func clearCIEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(key, "")
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-driven suggestions
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		container   bool
		env         map[string]string
		wantContain []string
		wantAbsent  []string
	}{
		{
			name:        "in CI without sandbox flag",
			env:         map[string]string{"CI": "true"},
			wantContain: []string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN", "md2site doctor"},
		},
		{
			name:        "in container",
			container:   true,
			wantContain: []string{"ROD_NO_SANDBOX"},
		},
		{
			name:        "sandbox already disabled",
			container:   true,
			env:         map[string]string{"ROD_NO_SANDBOX": "1"},
			wantAbsent:  []string{"ROD_NO_SANDBOX"},
			wantContain: []string{"ROD_BROWSER_BIN"},
		},
		{
			name:        "local machine with browser bin",
			env:         map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chromium"},
			wantAbsent:  []string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
			wantContain: []string{"md2site doctor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			clearCIEnv(t)
			t.Setenv("ROD_NO_SANDBOX", "")
			t.Setenv("ROD_BROWSER_BIN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			hint := ForBrowserConnect()

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q should start with hint prefix", hint)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(hint, want) {
					t.Errorf("hint %q should contain %q", hint, want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(hint, absent) {
					t.Errorf("hint %q should not contain %q", hint, absent)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Static hints
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("home", "me", ".config", "go-md2site", "site.yaml")

	got := ForConfigNotFound([]string{"site.yaml", "site.yml", userPath})
	if !strings.Contains(got, "--config") {
		t.Errorf("hint %q should mention --config", got)
	}
	if !strings.Contains(got, "create "+userPath) {
		t.Errorf("hint %q should suggest creating %q", got, userPath)
	}

	local := ForConfigNotFound([]string{"site.yaml"})
	if strings.Contains(local, "create") {
		t.Errorf("hint %q should not suggest creating a local file", local)
	}
}

func TestForThemeFallback(t *testing.T) {
	t.Parallel()

	if got := ForThemeFallback(nil); got != "" {
		t.Errorf("ForThemeFallback(nil) = %q, want empty", got)
	}

	got := ForThemeFallback([]string{"dark", "iridium", "paper"})
	if got != "\n  hint: available themes: dark, iridium, paper" {
		t.Errorf("ForThemeFallback() = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"ForTimeout":         ForTimeout(),
		"ForOutputDirectory": ForOutputDirectory(),
		"ForInputPath":       ForInputPath(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") || len(hint) <= len("\n  hint: ") {
			t.Errorf("%s() = %q, want non-empty formatted hint", name, hint)
		}
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
