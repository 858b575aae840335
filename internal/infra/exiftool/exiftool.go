// Package exiftool shells out to the exiftool binary for reading and
// writing embedded photo metadata.
package exiftool

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"phorg/internal/domain"
	"phorg/internal/errors"
)

// timeLayout is exiftool's timestamp format.
const timeLayout = "2006:01:02 15:04:05"

// Provider invokes exiftool once per call. Reads use the JSON output
// with group-prefixed tag names; writes update tags in place on the
// destination copy.
type Provider struct {
	// Binary overrides the exiftool executable name.
	Binary string
}

// record is the wire shape of one element of exiftool's -json output.
type record struct {
	DateTimeOriginal string `json:"EXIF:DateTimeOriginal"`
	CreateDate       string `json:"EXIF:CreateDate"`
	Album            string `json:"XMP:Album"`
	OriginalFileName string `json:"XMP:OriginalFileName"`
	Make             string `json:"EXIF:Make"`
	Model            string `json:"EXIF:Model"`
	GPSLatitude      string `json:"EXIF:GPSLatitude"`
	GPSLongitude     string `json:"EXIF:GPSLongitude"`
}

func (p Provider) bin() string {
	if p.Binary != "" {
		return p.Binary
	}
	return "exiftool"
}

func (p Provider) Read(ctx context.Context, path string) (domain.MetadataRecord, error) {
	if err := checkPath(path); err != nil {
		return domain.MetadataRecord{}, err
	}

	out, err := exec.CommandContext(ctx, p.bin(), "-json", "-G", path).Output()
	if err != nil {
		return domain.MetadataRecord{}, errors.Wrap(errors.MetadataUnavailable, "exiftool", path, err)
	}

	rec, err := decode(out)
	if err != nil {
		return domain.MetadataRecord{}, errors.Wrap(errors.MetadataUnavailable, "exiftool", path, err)
	}
	return rec, nil
}

func decode(out []byte) (domain.MetadataRecord, error) {
	var records []record
	if err := json.Unmarshal(out, &records); err != nil {
		return domain.MetadataRecord{}, fmt.Errorf("decode output: %w", err)
	}
	if len(records) == 0 {
		return domain.MetadataRecord{}, stderrors.New("no metadata record returned")
	}
	raw := records[0]

	taken, err := parseTime(raw.DateTimeOriginal)
	if err != nil {
		return domain.MetadataRecord{}, err
	}
	created, err := parseTime(raw.CreateDate)
	if err != nil {
		return domain.MetadataRecord{}, err
	}

	return domain.MetadataRecord{
		DateTimeOriginal: taken,
		CreateDate:       created,
		Album:            raw.Album,
		OriginalFileName: raw.OriginalFileName,
		Make:             raw.Make,
		Model:            raw.Model,
		GPSLatitude:      raw.GPSLatitude,
		GPSLongitude:     raw.GPSLongitude,
	}, nil
}

func parseTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(timeLayout, value)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return &parsed, nil
}

// Write stamps the album and original file name onto the destination
// copy. Other tags are left untouched.
func (p Provider) Write(ctx context.Context, path string, rec domain.MetadataRecord, originalName string) error {
	if err := checkPath(path); err != nil {
		return err
	}

	args := writeArgs(rec, originalName)
	if args == nil {
		return nil
	}
	args = append(args, path)

	if out, err := exec.CommandContext(ctx, p.bin(), args...).CombinedOutput(); err != nil {
		return errors.Wrap(errors.MetadataUnavailable, "exiftool write", path,
			fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out))))
	}
	return nil
}

func writeArgs(rec domain.MetadataRecord, originalName string) []string {
	var tags []string
	if originalName != "" {
		tags = append(tags, "-OriginalFileName="+originalName)
	}
	if rec.Album != "" {
		tags = append(tags, "-Album="+rec.Album)
	}
	if tags == nil {
		return nil
	}
	return append([]string{"-overwrite_original"}, tags...)
}

func checkPath(path string) error {
	if !utf8.ValidString(path) || strings.ContainsRune(path, 0) {
		return errors.Wrap(errors.PathEncoding, "exiftool", path,
			stderrors.New("path is not valid UTF-8"))
	}
	return nil
}
