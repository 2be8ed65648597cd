package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	md2site "github.com/alnah/go-md2site"
	"github.com/alnah/go-md2site/internal/fileutil"
)

// Doctor status values.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorReport holds everything the doctor checked.
// Browser problems are warnings: HTML builds never need Chrome.
type doctorReport struct {
	Status   string      `json:"status"`
	Browser  browserInfo `json:"browser"`
	Env      envInfo     `json:"environment"`
	Assets   assetInfo   `json:"assets"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// browserInfo holds Chrome/Chromium detection results.
type browserInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds platform and environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// assetInfo holds the themes a build can use.
type assetInfo struct {
	Path   string   `json:"path,omitempty"`
	Themes []string `json:"themes"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json      bool
	assetPath string
}

// newDoctorFlagSet registers the doctor flags into f.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.StringVar(&f.assetPath, "asset-path", os.Getenv("MD2SITE_ASSET_PATH"), "custom asset directory to check")
	return fs
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = usable (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.SetOutput(env.Stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	report := runDoctor(f.assetPath)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all checks.
func runDoctor(assetPath string) *doctorReport {
	r := &doctorReport{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
		Assets: assetInfo{Path: assetPath},
	}

	checkBrowser(r)
	checkEnvironment(r)
	checkAssets(r)
	checkTempDir(r)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// checkBrowser locates Chrome the way the PDF engine will.
func checkBrowser(r *doctorReport) {
	path := r.Env.BrowserBin
	if path == "" {
		var found bool
		path, found = launcher.LookPath()
		if !found {
			r.Warnings = append(r.Warnings,
				"Chrome/Chromium not found: --pdf and --pdf-mirror will fail. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if !fileutil.FileExists(path) {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Chrome not found at %s", path))
		return
	}

	r.Browser.Found = true
	r.Browser.Path = path
	r.Browser.Sandbox = r.Env.NoSandbox != "1"

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path is the browser binary
	if err != nil {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Could not get Chrome version: %v", err))
		return
	}
	r.Browser.Version = strings.TrimSpace(string(out))
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(r *doctorReport) {
	r.Env.Container, r.Env.ContainerHint = detectContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			r.Env.CI = true
			break
		}
	}

	if (r.Env.Container || r.Env.CI) && r.Env.NoSandbox != "1" {
		r.Warnings = append(r.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// detectContainer reports whether the process runs in a container and
// which signal gave it away.
func detectContainer() (bool, string) {
	if os.Getenv("MD2SITE_CONTAINER") == "1" {
		return true, "MD2SITE_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkAssets loads the theme list and the default theme and template set.
// Any failure here breaks every build.
func checkAssets(r *doctorReport) {
	loader, err := md2site.NewAssetLoader(r.Assets.Path)
	if err != nil {
		r.Errors = append(r.Errors, err.Error())
		return
	}

	themes, err := loader.ListStyles()
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("Listing themes: %v", err))
		return
	}
	r.Assets.Themes = themes

	if _, err := md2site.ResolveTheme(loader, md2site.DefaultTheme); err != nil {
		r.Errors = append(r.Errors, err.Error())
	}
	if _, err := loader.LoadTemplateSet(md2site.DefaultTemplateSet); err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("Template set %q: %v", md2site.DefaultTemplateSet, err))
	}
}

// checkTempDir verifies the temp directory accepts files.
func checkTempDir(r *doctorReport) {
	tmpDir := os.TempDir()
	f, err := os.CreateTemp(tmpDir, "md2site-doctor-*")
	if err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	r.System.TempWritable = true
}

// printDoctorReport writes the human-readable report.
func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "md2site doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser (PDF output)")
	if r.Browser.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Browser.Path)
		if r.Browser.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Browser.Version)
		}
		if r.Browser.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	if r.Assets.Path != "" {
		fmt.Fprintf(w, "  [OK] Custom path: %s\n", r.Assets.Path)
	}
	if len(r.Assets.Themes) > 0 {
		fmt.Fprintf(w, "  [OK] Themes: %s\n", strings.Join(r.Assets.Themes, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", e)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
