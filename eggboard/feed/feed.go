// Package feed loads the moderator-approved submissions that the archive
// pages display. Loading never fails: any problem yields an empty feed.
package feed

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/diamondburned/eggboard/eggboard"
	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"
)

// ErrNoSource is returned by Fetch if the loader has no source.
var ErrNoSource = errors.New("no feed source configured")

// MaxSize caps how much of a feed is read.
const MaxSize = int64(8 * datasize.MB)

// FetchTimeout bounds a shared fetch. The fetch doesn't use any caller's
// context, since one caller leaving must not fail the others.
var FetchTimeout = 30 * time.Second

type Loader struct {
	src     Source
	variant eggboard.Variant
	group   singleflight.Group
}

// NewLoader creates a loader. A nil source loads nothing.
func NewLoader(src Source, v eggboard.Variant) *Loader {
	return &Loader{src: src, variant: v}
}

// Load fetches and decodes the feed. Concurrent calls share a single fetch;
// nothing is kept once it completes. A canceled ctx only stops the wait.
func (l *Loader) Load(ctx context.Context) []eggboard.Submission {
	if l.src == nil {
		return nil
	}

	ch := l.group.DoChan(l.src.Key(), func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.Background(), FetchTimeout)
		defer cancel()

		return l.Fetch(ctx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			log.Printf("Failed to load %s feed: %v", l.variant.Name, res.Err)
			return nil
		}
		return res.Val.([]eggboard.Submission)

	case <-ctx.Done():
		return nil
	}
}

// Fetch is Load without the fallback: it returns the error and bypasses fetch
// coalescing.
func (l *Loader) Fetch(ctx context.Context) ([]eggboard.Submission, error) {
	if l.src == nil {
		return nil, ErrNoSource
	}

	r, err := l.src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Decode(io.LimitReader(r, MaxSize), l.variant)
}
