// Package blobsnap pushes and pulls portable tree snapshots to Azure blob
// storage. A snapshot blob is exactly the stream Export produces, so anything
// that can read the blob can rebuild the tree, whatever backend or node
// format the pushing side used.
package blobsnap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"

	suffixtree "github.com/seqeron/go-suffixtree"
)

// ErrSnapshotNotFound is returned by Pull and Delete when the named snapshot
// does not exist in the container.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Store reads and writes snapshots in one blob container.
type Store struct {
	client    *azblob.Client
	container string
	log       *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New wraps an existing service client. The container must already exist.
func New(client *azblob.Client, container string, opts ...Option) *Store {
	s := &Store{client: client, container: container, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// NewFromConnectionString dials the service with a connection string.
func NewFromConnectionString(connectionString, container string, opts ...Option) (*Store, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing blob service: %w", err)
	}
	return New(client, container, opts...), nil
}

// Push uploads the tree's portable snapshot under name, overwriting any
// previous snapshot of the same name.
func (s *Store) Push(ctx context.Context, name string, t *suffixtree.Tree) error {
	if err := checkName(name); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.Export(&buf); err != nil {
		return err
	}
	size := buf.Len()
	if _, err := s.client.UploadStream(ctx, s.container, name, &buf, nil); err != nil {
		return fmt.Errorf("uploading snapshot %q: %w", name, err)
	}
	s.log.Info("snapshot pushed",
		zap.String("container", s.container),
		zap.String("name", name),
		zap.Int("bytes", size),
	)
	return nil
}

// Pull downloads the named snapshot and rebuilds a heap-resident tree from
// it. The snapshot's content hash is verified before construction.
func (s *Store) Pull(ctx context.Context, name string, opts ...suffixtree.Option) (*suffixtree.Tree, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	resp, err := s.client.DownloadStream(ctx, s.container, name, nil)
	if err != nil {
		return nil, wrapNotFound(name, err)
	}
	defer resp.Body.Close()
	t, err := suffixtree.Import(resp.Body, opts...)
	if err != nil {
		return nil, fmt.Errorf("rebuilding snapshot %q: %w", name, err)
	}
	s.log.Info("snapshot pulled",
		zap.String("container", s.container),
		zap.String("name", name),
		zap.Uint64("text_len", t.Stats().LeafCount),
	)
	return t, nil
}

// Delete removes the named snapshot.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if _, err := s.client.DeleteBlob(ctx, s.container, name, nil); err != nil {
		return wrapNotFound(name, err)
	}
	return nil
}

// List returns the names of every snapshot in the container.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	pager := s.client.NewListBlobsFlatPager(s.container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing snapshots: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name != nil {
				names = append(names, *item.Name)
			}
		}
	}
	return names, nil
}

// wrapNotFound translates the service's blob-not-found error code into
// ErrSnapshotNotFound; every other error passes through untouched.
func wrapNotFound(name string, err error) error {
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return fmt.Errorf("%q: %w", name, ErrSnapshotNotFound)
	}
	return fmt.Errorf("snapshot %q: %w", name, err)
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, "\\\n\r") {
		return fmt.Errorf("invalid snapshot name %q", name)
	}
	return nil
}
