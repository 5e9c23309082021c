// Package archive stores and retrieves archived objects behind a common
// interface, grounded on SPEC_FULL.md §4.10's "Archive storage adapter":
// local filesystem by default, with an Azure Blob Storage–backed
// implementation of the same interface for cloud archival targets. The
// original implementation reaches Azure only by shelling out to the `az`
// CLI (repository/shell/az/storage_account.py); this adapter instead uses
// the SDK directly for the blob-upload path, since a direct SDK call is the
// idiomatic Go way to move archive bytes rather than shelling out to a
// wrapper binary for data transfer.
package archive

import (
	"context"
	"io"
)

// Store is the interface every archive backend implements: put an object
// under key, and fetch it back later.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
