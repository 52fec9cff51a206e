package snapshot

import (
	"context"
	"fmt"

	"github.com/viant/afs"
)

// Load reads and decodes a snapshot from the given URL. Any scheme the
// virtual filesystem understands works: plain paths, file://, mem://,
// cloud object stores.
func Load(ctx context.Context, URL string) (*Snapshot, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %v: %w", URL, err)
	}
	snap, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot %v: %w", URL, err)
	}
	return snap, nil
}
