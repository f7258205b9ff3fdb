// Package sink provides ports.ExportSink implementations.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileSink writes each export to a file, replacing the previous content.
// The file is written to a temporary sibling first and renamed into place,
// so readers never observe a partial export.
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink returns a FileSink writing to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the target file.
func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Deliver(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("move export into place: %w", err)
	}
	return nil
}

// WriterSink writes each export to an io.Writer, followed by a newline.
type WriterSink struct {
	w  io.Writer
	mu sync.Mutex
}

// NewWriterSink returns a WriterSink over w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Deliver(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.w, text+"\n"); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
