package source

import (
	"context"

	"github.com/viant/afs"
)

// Reader is the external collaborator that supplies source bytes for a
// path. It mirrors afs.Service's download method so the same Manager can
// be backed by the local OS filesystem, an in-memory fixture, or a remote
// afs-backed store (s3, gs, ...) without any change to the core pipeline.
// See spec §6: "A filesystem/source reader providing a path-indexed byte
// buffer".
type Reader interface {
	DownloadWithURL(ctx context.Context, URL string) ([]byte, error)
}

// AFSReader adapts a real afs.Service into Reader.
type AFSReader struct {
	svc afs.Service
}

// NewAFSReader returns a Reader backed by the default afs service, which
// dispatches on URL scheme (file://, mem://, s3://, ...).
func NewAFSReader() *AFSReader {
	return &AFSReader{svc: afs.New()}
}

func (r *AFSReader) DownloadWithURL(ctx context.Context, URL string) ([]byte, error) {
	return r.svc.DownloadWithURL(ctx, URL)
}

// MemReader is an in-memory Reader used by tests and by tools that already
// hold source text (e.g. an editor buffer) and don't want a real
// filesystem round-trip.
type MemReader struct {
	Files map[string][]byte
}

func NewMemReader() *MemReader {
	return &MemReader{Files: make(map[string][]byte)}
}

func (r *MemReader) DownloadWithURL(_ context.Context, URL string) ([]byte, error) {
	b, ok := r.Files[URL]
	if !ok {
		return nil, &NotFoundError{Path: URL}
	}
	return b, nil
}

// NotFoundError reports that a requested source path could not be located.
// Per spec §4.1 this is the single fatal, non-recoverable failure mode of
// the source layer.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return "source file not found: " + e.Path
}
