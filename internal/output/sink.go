// Package output delivers finished artifacts to their destination.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:generate mockgen -source=sink.go -destination=sink_mock.go -package=output

const (
	ContentTypePDF = "application/pdf"
	ContentTypeZip = "application/zip"
)

// Sink receives one named blob per call.
type Sink interface {
	Save(ctx context.Context, name, contentType string, blob []byte) error
}

// ContentTypeFor guesses the content type from the file extension.
func ContentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		return ContentTypeZip
	case ".pdf":
		return ContentTypePDF
	}

	return "application/octet-stream"
}

// DirSink writes files into a local directory.
type DirSink struct {
	dir string
}

func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

func (d *DirSink) Dir() string {
	return d.dir
}

func (d *DirSink) Save(ctx context.Context, name, _ string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(d.dir, filepath.Base(name))

	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
