package main

import (
	"io"
	"os"
	"time"

	md2site "github.com/alnah/go-md2site"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// NewPDFEngine creates the engine for a PDF run. The caller closes it.
	NewPDFEngine func(timeout time.Duration) md2site.PDFEngine
}

// DefaultEnv returns the production environment: real streams and a
// headless Chrome engine.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewPDFEngine: func(timeout time.Duration) md2site.PDFEngine {
			return md2site.NewRodEngine(timeout)
		},
	}
}
