package md2site

import (
	"context"
	"fmt"
	"io"
	"os"

	filesystem "github.com/adnsv/go-utils/fs"

	"github.com/alnah/go-md2site/internal/fileutil"
)

// MigrationResult splits a job list into documents to render and assets
// that were copied or failed to copy.
type MigrationResult struct {
	Documents []Job       // Markdown jobs, in input order
	Copied    []JobResult // Assets copied to the output tree
	Failed    []JobResult // Assets that could not be copied
}

// Migrator copies non-Markdown files into the output tree unchanged.
type Migrator struct {
	out io.Writer
}

// NewMigrator creates a Migrator reporting failures to out (nil discards).
func NewMigrator(out io.Writer) *Migrator {
	if out == nil {
		out = io.Discard
	}
	return &Migrator{out: out}
}

// Migrate copies every non-Markdown job's source to its destination and
// returns the Markdown jobs still to render. A file whose destination
// already holds identical bytes is not rewritten. Copy failures are
// collected and do not stop the remaining copies; cancellation fails the
// remaining assets with the context error.
func (m *Migrator) Migrate(ctx context.Context, jobs []Job) MigrationResult {
	var res MigrationResult

	for _, job := range jobs {
		if fileutil.Path(job.Source).IsMarkdown() {
			res.Documents = append(res.Documents, job)
			continue
		}

		if err := ctx.Err(); err != nil {
			res.Failed = append(res.Failed, JobResult{Job: job, Err: err})
			continue
		}

		if err := copyAsset(job); err != nil {
			fmt.Fprintf(m.out, "Failed: %s: %v\n", job.Source, err)
			res.Failed = append(res.Failed, JobResult{Job: job, Err: err})
			continue
		}
		res.Copied = append(res.Copied, JobResult{Job: job, Outputs: []string{job.Destination}})
	}

	return res
}

func copyAsset(job Job) error {
	data, err := os.ReadFile(job.Source) // #nosec G304 -- discovered by walking the input tree
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCopyAsset, err)
	}

	dest := fileutil.Path(job.Destination)
	if err := os.MkdirAll(dest.Dir().String(), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputDir, err)
	}

	if err := filesystem.WriteFileIfChanged(dest.String(), data); err != nil {
		return fmt.Errorf("%w: %v", ErrCopyAsset, err)
	}
	return nil
}
