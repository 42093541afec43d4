package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentExtractions bounds parallel parsing in ExtractPaths.
const maxConcurrentExtractions = 4

// ReadFile loads a file from disk after checking its size.
// Oversized files are rejected before any bytes are read.
func ReadFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	if err := CheckSize(info.Size()); err != nil {
		return File{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", path, err)
	}

	return File{
		Name:        filepath.Base(path),
		ContentType: ContentTypeFor(path),
		Data:        data,
	}, nil
}

// Extracted is one file's extraction outcome.
type Extracted struct {
	Path string
	File File
	Text string
	Err  error
}

// ExtractPaths reads and extracts several files concurrently.
// Per-file failures are reported in Extracted.Err; results keep input order.
// Only context cancellation aborts the whole batch.
func (r *Registry) ExtractPaths(ctx context.Context, paths []string) ([]Extracted, error) {
	results := make([]Extracted, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentExtractions)

	for i, path := range paths {
		g.Go(func() error {
			results[i].Path = path

			file, err := ReadFile(path)
			if err != nil {
				results[i].Err = err
				return nil
			}
			results[i].File = file

			text, err := r.Extract(ctx, file)
			if err != nil {
				if isCanceled(err) {
					return err
				}
				results[i].Err = err
				return nil
			}
			results[i].Text = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
