// Package exifnative reads EXIF metadata in-process with
// rwcarlsen/goexif. It cannot write tags back, so it suits dry runs
// and environments without the exiftool binary.
package exifnative

import (
	"context"
	stderrors "errors"
	"os"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"

	"phorg/internal/domain"
	"phorg/internal/errors"
)

// ErrWriteUnsupported is returned by Write; the pipeline reports it as
// a per-item warning, not a failure.
var ErrWriteUnsupported = stderrors.New("native provider cannot write metadata")

type Provider struct{}

func (Provider) Read(ctx context.Context, path string) (domain.MetadataRecord, error) {
	select {
	case <-ctx.Done():
		return domain.MetadataRecord{}, ctx.Err()
	default:
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.MetadataRecord{}, errors.Wrap(errors.MetadataUnavailable, "open", path, err)
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if err != nil {
		return domain.MetadataRecord{}, errors.Wrap(errors.MetadataUnavailable, "decode exif", path, err)
	}

	var rec domain.MetadataRecord
	rec.DateTimeOriginal = tagTime(x, goexif.DateTimeOriginal)
	rec.CreateDate = tagTime(x, goexif.DateTimeDigitized)
	if rec.DateTimeOriginal == nil && rec.CreateDate == nil {
		if parsed, err := x.DateTime(); err == nil {
			rec.CreateDate = &parsed
		}
	}
	rec.Make = tagString(x, goexif.Make)
	rec.Model = tagString(x, goexif.Model)
	rec.GPSLatitude = tagString(x, goexif.GPSLatitude)
	rec.GPSLongitude = tagString(x, goexif.GPSLongitude)

	return rec, nil
}

func (Provider) Write(ctx context.Context, path string, record domain.MetadataRecord, originalName string) error {
	return ErrWriteUnsupported
}

func tagTime(x *goexif.Exif, name goexif.FieldName) *time.Time {
	str := tagString(x, name)
	if str == "" {
		return nil
	}
	parsed, err := time.Parse("2006:01:02 15:04:05", str)
	if err != nil {
		return nil
	}
	return &parsed
}

func tagString(x *goexif.Exif, name goexif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	str, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return str
}
