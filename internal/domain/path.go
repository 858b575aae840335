package domain

import (
	"errors"
	"fmt"
	"path"
)

// ErrMissingTimestamp is returned by Derive when a record carries
// neither DateTimeOriginal nor CreateDate. Such a photo cannot be
// placed on the timeline.
var ErrMissingTimestamp = errors.New("metadata has no capture timestamp")

const unknownCamera = "unknown camera"

// Derive maps a metadata record and the source extension to the
// relative destination fragment <bucket>/<camera>/<stem>.<ext>.
//
// The function is pure: identical input always yields the identical
// fragment, which is what makes re-imports idempotent.
func Derive(record MetadataRecord, ext string) (string, error) {
	taken, ok := record.TakenAt()
	if !ok {
		return "", ErrMissingTimestamp
	}

	bucket := "timeline/" + taken.Format("2006-01-Jan")
	if record.Album != "" {
		bucket = "albums/" + record.Album
	}

	camera := unknownCamera
	if record.Make != "" && record.Model != "" {
		camera = record.Make + " " + record.Model
	}

	name := taken.Format("2006-01-02_15-04-05")
	if ext != "" {
		name = fmt.Sprintf("%s.%s", name, ext)
	}

	return path.Join(bucket, camera, name), nil
}
