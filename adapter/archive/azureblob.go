package archive

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/khjklujn/state-machine/machine"
)

// BlobStore is the cloud archival Store: objects live as blobs inside a
// single container, keyed by blob name.
type BlobStore struct {
	client    *azblob.Client
	container string
	logger    machine.Logger
}

// NewBlobStore constructs a BlobStore against container in the account
// reachable via serviceURL, authenticated with a shared key (matching the
// original implementation's own reliance on a retrieved storage account
// key — see repository/shell/az/storage_account.py's primary_key). Like
// NewLocalStore, this takes more than a logger, so pipeline wiring curries
// it rather than passing it directly to machine.Bind.
func NewBlobStore(serviceURL, accountName, accountKey, container string, logger machine.Logger) (*BlobStore, error) {
	cred, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("archive: building shared key credential: %w", err)
	}
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("archive: building blob client: %w", err)
	}
	return &BlobStore{client: client, container: container, logger: logger}, nil
}

// Put uploads r's contents as a blob named key inside the store's
// container, overwriting any existing blob of the same name.
func (s *BlobStore) Put(ctx context.Context, key string, r io.Reader) error {
	if _, err := s.client.UploadStream(ctx, s.container, key, r, nil); err != nil {
		return fmt.Errorf("archive: uploading %s to container %s: %w", key, s.container, err)
	}
	s.logger.Debug(fmt.Sprintf("archive: uploaded %s to container %s", key, s.container))
	return nil
}

// Get downloads the blob named key from the store's container.
func (s *BlobStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if err != nil {
		return nil, fmt.Errorf("archive: downloading %s from container %s: %w", key, s.container, err)
	}
	return resp.Body, nil
}
