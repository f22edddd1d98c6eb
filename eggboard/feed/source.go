package feed

import (
	"context"
	"io"

	"github.com/c2h5oh/datasize"
	"github.com/diamondburned/eggboard/client"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

// FileName is the name of the approved submissions feed.
const FileName = "approved-submissions.json"

// Source produces the raw feed. Every Fetch must revalidate; sources must not
// serve a stale copy.
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
	// Key identifies the source for fetch coalescing.
	Key() string
}

// HTTPSource fetches the feed from a URL.
type HTTPSource struct {
	Client *client.Client
	URL    string
}

var _ Source = (*HTTPSource)(nil)

func (s *HTTPSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	return s.Client.GetFresh(ctx, s.URL)
}

func (s *HTTPSource) Key() string {
	return s.URL
}

// DiskSource reads the feed from a directory that the moderation process
// writes into.
type DiskSource struct {
	store *diskv.Diskv
	dir   string
	name  string
}

var _ Source = (*DiskSource)(nil)

// NewDiskSource creates a source that reads name from dir. An empty name uses
// FileName.
func NewDiskSource(dir, name string) *DiskSource {
	if name == "" {
		name = FileName
	}

	return &DiskSource{
		store: diskv.New(diskv.Options{
			BasePath: dir,
			Transform: func(s string) []string {
				return nil
			},
			CacheSizeMax: uint64(1 * datasize.MB),
		}),
		dir:  dir,
		name: name,
	}
}

func (s *DiskSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	// Direct reads skip the diskv cache so every load sees the current file.
	r, err := s.store.ReadStream(s.name, true)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read %q", s.name)
	}
	return r, nil
}

func (s *DiskSource) Key() string {
	return s.dir + "/" + s.name
}
