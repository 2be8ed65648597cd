package main

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintBuildUsage - Every flag is documented
// ---------------------------------------------------------------------------

func TestPrintBuildUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printBuildUsage(&buf)
	out := buf.String()

	for _, flag := range []string{
		"--input", "--output", "--config", "--pdf", "--pdf-mirror", "--timeout",
		"--theme", "--asset-path", "--highlight", "--no-water-mark", "--quiet", "--verbose",
	} {
		if !strings.Contains(out, flag) {
			t.Errorf("build usage missing %s", flag)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Per-command help
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want string
	}{
		{nil, "Commands:"},
		{[]string{"build"}, "Usage: md2site [build]"},
		{[]string{"doctor"}, "Usage: md2site doctor"},
		{[]string{"version"}, "Usage: md2site version"},
		{[]string{"help"}, "Usage: md2site help"},
		{[]string{"completion"}, "Usage: md2site completion"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(&fakeEngine{})
			runHelp(tt.args, env)

			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, stdout.String())
			}
			if stderr.Len() != 0 {
				t.Errorf("unexpected stderr: %q", stderr.String())
			}
		})
	}
}
