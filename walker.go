package md2site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// Discovery is the complete job list of a run, computed before any rendering.
type Discovery struct {
	Root       string // Canonical input path
	IsDir      bool   // Input was a directory
	OutputRoot string // Output root as given, cleaned
	Jobs       []Job  // One job per discovered file, in lexical order
	Skipped    int    // Entries skipped because they could not be read
}

// Walk resolves inputPath and computes one Job per file to process.
//
// A file input yields a single job whose destination is outputRoot plus the
// file's base name. A directory input yields one job per regular file
// beneath it, with destination outputRoot plus the path relative to the
// directory. Entries that cannot be read are passed to onSkip (which may be
// nil) and left out. When outputRoot lies inside the input directory, that
// subtree is not walked. When outputRoot is the input directory itself, the
// .html and .pdf siblings of discovered Markdown files are left out: they
// are this build's own outputs from a previous run.
//
// Returns ErrInputResolve if inputPath cannot be canonicalised or stat'ed.
func Walk(inputPath, outputRoot string, onSkip func(path string, err error)) (*Discovery, error) {
	if onSkip == nil {
		onSkip = func(string, error) {}
	}

	absInput, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputResolve, inputPath, err)
	}
	root, err := filepath.EvalSymlinks(absInput)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputResolve, inputPath, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputResolve, inputPath, err)
	}

	out := fileutil.Path(filepath.Clean(outputRoot))
	disc := &Discovery{Root: root, IsDir: info.IsDir(), OutputRoot: out.String()}

	if !info.IsDir() {
		disc.Jobs = []Job{{
			Source:      root,
			Destination: out.Join(filepath.Base(absInput)).String(),
		}}
		return disc, nil
	}

	excluded := excludedOutput(fileutil.Path(root), outputRoot)
	inPlace := sameCanonical(fileutil.Path(root), outputRoot)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			onSkip(path, walkErr)
			disc.Skipped++
			return nil
		}

		if d.IsDir() {
			if excluded != "" && path == excluded.String() {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegularFile(path, d, onSkip, &disc.Skipped) {
			return nil
		}

		rel, err := fileutil.Path(root).Rel(fileutil.Path(path))
		if err != nil {
			onSkip(path, err)
			disc.Skipped++
			return nil
		}
		disc.Jobs = append(disc.Jobs, Job{
			Source:      path,
			Destination: out.Join(rel.String()).String(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInputResolve, inputPath, err)
	}

	if inPlace {
		disc.Jobs = dropGeneratedOutputs(disc.Jobs)
	}
	return disc, nil
}

// dropGeneratedOutputs removes non-Markdown jobs that are the rendered
// outputs of a Markdown job in the same list.
func dropGeneratedOutputs(jobs []Job) []Job {
	generated := make(map[string]bool)
	for _, job := range jobs {
		src := fileutil.Path(job.Source)
		if src.IsMarkdown() {
			generated[src.WithOutputExt(".html").String()] = true
			generated[src.WithOutputExt(".pdf").String()] = true
		}
	}

	kept := jobs[:0]
	for _, job := range jobs {
		if generated[job.Source] && !fileutil.Path(job.Source).IsMarkdown() {
			continue
		}
		kept = append(kept, job)
	}
	return kept
}

// isRegularFile reports whether the entry is a regular file or a symlink to
// one. Broken symlinks are reported through onSkip.
func isRegularFile(path string, d fs.DirEntry, onSkip func(string, error), skipped *int) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}

	target, err := os.Stat(path)
	if err != nil {
		onSkip(path, err)
		*skipped++
		return false
	}
	return target.Mode().IsRegular()
}

// excludedOutput returns the canonical output root when it lies strictly
// inside root, or "" otherwise.
func excludedOutput(root fileutil.Path, outputRoot string) fileutil.Path {
	abs, err := filepath.Abs(outputRoot)
	if err != nil {
		return ""
	}

	out := canonical(fileutil.Path(abs))
	if out == root || !root.Contains(out) {
		return ""
	}
	return out
}

// sameCanonical reports whether outputRoot resolves to root.
func sameCanonical(root fileutil.Path, outputRoot string) bool {
	abs, err := filepath.Abs(outputRoot)
	if err != nil {
		return false
	}
	return canonical(fileutil.Path(abs)) == root
}

// canonical resolves symlinks in the longest existing prefix of p, so an
// output root that does not exist yet still compares against the input.
func canonical(p fileutil.Path) fileutil.Path {
	var missing []string
	for {
		if real, err := filepath.EvalSymlinks(p.String()); err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				real = filepath.Join(real, missing[i])
			}
			return fileutil.Path(real)
		}
		parent := p.Dir()
		if parent == p {
			return p
		}
		missing = append(missing, p.Base())
		p = parent
	}
}
