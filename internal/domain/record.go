package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// MetadataRecord holds the embedded metadata fields the importer cares
// about. A nil timestamp means the field was absent from the file.
type MetadataRecord struct {
	DateTimeOriginal *time.Time
	CreateDate       *time.Time
	Album            string
	OriginalFileName string
	Make             string
	Model            string
	GPSLatitude      string
	GPSLongitude     string
}

// TakenAt resolves the capture timestamp, preferring DateTimeOriginal
// over CreateDate. The second return is false when both are absent.
func (r MetadataRecord) TakenAt() (time.Time, bool) {
	if r.DateTimeOriginal != nil {
		return *r.DateTimeOriginal, true
	}
	if r.CreateDate != nil {
		return *r.CreateDate, true
	}
	return time.Time{}, false
}

// SourceItem is a discovered input file together with the root it was
// discovered under. The root decides whether the file is deep enough in
// a sub-folder to imply an album name.
type SourceItem struct {
	Path string
	Root string
}

// BelowRoot reports whether the item's parent directory sits strictly
// below the discovery root.
func (s SourceItem) BelowRoot() bool {
	rel, err := filepath.Rel(s.Root, s.Path)
	if err != nil {
		return false
	}
	if rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	return filepath.Dir(rel) != "."
}

// ParentName is the name of the item's immediate parent directory.
func (s SourceItem) ParentName() string {
	return filepath.Base(filepath.Dir(s.Path))
}

// Ext is the item's file extension without the leading dot, case preserved.
func (s SourceItem) Ext() string {
	return strings.TrimPrefix(filepath.Ext(s.Path), ".")
}

// BaseName is the item's file name including extension.
func (s SourceItem) BaseName() string {
	return filepath.Base(s.Path)
}

// ImportedPhoto is a source item resolved against its metadata: the
// derived destination fragment, content checksum and original name the
// copy step needs. Created once per item and discarded after the copy.
type ImportedPhoto struct {
	Source       SourceItem
	Record       MetadataRecord
	Fragment     string
	Checksum     string
	OriginalName string
}

func IsJPEG(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}
