package app

import (
	"context"
	"io"
	"io/fs"

	"phorg/internal/domain"
)

type FileSystem interface {
	WalkDir(root string, fn fs.WalkDirFunc) error
	Open(path string) (io.ReadCloser, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	CopyFile(src, dst string) error
}

// MetadataProvider reads embedded metadata from a photo and writes
// selected fields back onto an imported copy.
type MetadataProvider interface {
	Read(ctx context.Context, path string) (domain.MetadataRecord, error)
	Write(ctx context.Context, path string, record domain.MetadataRecord, originalName string) error
}

// ChecksumIndex is the durable content-checksum to destination mapping.
type ChecksumIndex interface {
	Lookup(sum string) (string, bool)
	Record(sum, path string) error
}
