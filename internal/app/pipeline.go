package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"path/filepath"

	"phorg/internal/checksum"
	"phorg/internal/domain"
	"phorg/internal/errors"
	"phorg/internal/logging"
)

// Status is the terminal state of one source item.
type Status int

const (
	// StatusImported means the photo was copied to its destination
	// (or would be, in a dry run).
	StatusImported Status = iota
	// StatusSkipped means a file already existed at the destination.
	StatusSkipped
	// StatusDuplicate means the content checksum was already in the
	// index under a different destination. Only reachable with the
	// content-dedup option enabled.
	StatusDuplicate
	// StatusFailed means a per-item error; the run continues.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusImported:
		return "imported"
	case StatusSkipped:
		return "skipped"
	case StatusDuplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

// ItemResult records the outcome of one source item.
type ItemResult struct {
	Source      string
	Destination string // relative fragment, set for imported and skipped items
	Existing    string // prior destination, set for duplicates
	Status      Status
	Err         error
	Warnings    []string
}

// Report aggregates a whole run.
type Report struct {
	Results    []ItemResult
	Imported   int
	Skipped    int
	Duplicates int
	Failed     int
}

func (r *Report) add(res ItemResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusImported:
		r.Imported++
	case StatusSkipped:
		r.Skipped++
	case StatusDuplicate:
		r.Duplicates++
	default:
		r.Failed++
	}
}

// ProgressFunc is called after each processed item.
type ProgressFunc func(current, total int, source string)

// Pipeline imports discovered photos one at a time: checksum, read
// metadata, derive the destination, dedup-check, copy, write metadata
// back, record in the index. Items never overlap, so the index needs
// no coordination beyond its own persistence.
type Pipeline struct {
	FS       FileSystem
	Metadata MetadataProvider
	Index    ChecksumIndex
	Logger   logging.Logger

	OutputDir         string
	AlbumFromFilename bool
	DedupeContent     bool
	Hash              checksum.Algorithm
	DryRun            bool

	OnProgress ProgressFunc
}

// Run discovers candidates under every input and processes each in
// sequence. Per-item failures are recorded and logged and a root that
// cannot be walked is logged and passed over, so the run always
// attempts everything it can reach.
func (p *Pipeline) Run(ctx context.Context, inputs []string) (Report, error) {
	items, err := p.DiscoverAll(inputs)
	if err != nil {
		return Report{}, err
	}
	return p.RunItems(ctx, items)
}

// DiscoverAll collects the source items beneath every input root.
func (p *Pipeline) DiscoverAll(inputs []string) ([]domain.SourceItem, error) {
	if p.FS == nil {
		return nil, stderrors.New("pipeline requires FS")
	}
	stop := p.Logger.Measure("Discovering photos")
	defer stop()

	var items []domain.SourceItem
	for _, root := range inputs {
		found, err := Discover(p.FS, root)
		if err != nil {
			p.Logger.Warnf("Skipping %s: %v", root, errors.Wrap(errors.IOFailure, "discover", root, err))
			continue
		}
		for _, item := range found {
			p.Logger.Verbosef("Found %s", item.Path)
		}
		items = append(items, found...)
	}
	return items, nil
}

// RunItems processes pre-discovered items in order.
func (p *Pipeline) RunItems(ctx context.Context, items []domain.SourceItem) (Report, error) {
	if p.FS == nil || p.Metadata == nil || p.Index == nil {
		return Report{}, stderrors.New("pipeline requires FS, Metadata and Index")
	}

	stop := p.Logger.Measure("Importing photos")
	defer stop()

	var report Report
	for i, item := range items {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		res := p.processItem(ctx, item)
		report.add(res)
		p.logResult(res)

		if p.OnProgress != nil {
			p.OnProgress(i+1, len(items), item.Path)
		}
	}
	return report, nil
}

func (p *Pipeline) processItem(ctx context.Context, item domain.SourceItem) ItemResult {
	res := ItemResult{Source: item.Path}

	photo, err := p.resolve(ctx, item)
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}
	res.Destination = photo.Fragment

	dest := filepath.Join(p.OutputDir, filepath.FromSlash(photo.Fragment))
	exists, err := p.FS.Exists(dest)
	if err != nil {
		res.Status = StatusFailed
		res.Err = errors.Wrap(errors.IOFailure, "stat destination", dest, err)
		return res
	}
	if exists {
		res.Status = StatusSkipped
		return res
	}

	if p.DedupeContent {
		if prev, ok := p.Index.Lookup(photo.Checksum); ok && prev != photo.Fragment {
			res.Status = StatusDuplicate
			res.Existing = prev
			return res
		}
	}

	if p.DryRun {
		res.Status = StatusImported
		return res
	}

	if err := p.FS.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		res.Status = StatusFailed
		res.Err = errors.Wrap(errors.IOFailure, "create destination directory", dest, err)
		return res
	}
	if err := p.FS.CopyFile(item.Path, dest); err != nil {
		res.Status = StatusFailed
		res.Err = errors.Wrap(errors.IOFailure, "copy", item.Path, err)
		return res
	}

	// The copy is done; nothing past this point rolls it back.
	if err := p.Metadata.Write(ctx, dest, photo.Record, photo.OriginalName); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("metadata write-back failed for %s: %v", dest, err))
	}
	if err := p.Index.Record(photo.Checksum, photo.Fragment); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("index record failed for %s: %v", item.Path, err))
	}

	res.Status = StatusImported
	return res
}

// resolve runs the read-only half of the pipeline: checksum, metadata,
// album inference and path derivation.
func (p *Pipeline) resolve(ctx context.Context, item domain.SourceItem) (domain.ImportedPhoto, error) {
	sum, err := p.checksum(item.Path)
	if err != nil {
		return domain.ImportedPhoto{}, errors.Wrap(errors.IOFailure, "checksum", item.Path, err)
	}

	record, err := p.Metadata.Read(ctx, item.Path)
	if err != nil {
		kind := errors.KindOf(err)
		if kind == errors.Internal {
			kind = errors.MetadataUnavailable
		}
		return domain.ImportedPhoto{}, errors.Wrap(kind, "read metadata", item.Path, err)
	}

	if p.AlbumFromFilename && item.BelowRoot() {
		record.Album = item.ParentName()
	}

	fragment, err := domain.Derive(record, item.Ext())
	if err != nil {
		return domain.ImportedPhoto{}, errors.Wrap(errors.MissingTimestamp, "derive path", item.Path, err)
	}

	return domain.ImportedPhoto{
		Source:       item,
		Record:       record,
		Fragment:     fragment,
		Checksum:     sum,
		OriginalName: item.BaseName(),
	}, nil
}

func (p *Pipeline) checksum(path string) (string, error) {
	file, err := p.FS.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return p.Hash.Sum(file)
}

func (p *Pipeline) logResult(res ItemResult) {
	switch res.Status {
	case StatusImported:
		if p.DryRun {
			p.Logger.Verbosef("Would import %s -> %s", res.Source, res.Destination)
		} else {
			p.Logger.Verbosef("Imported %s -> %s", res.Source, res.Destination)
		}
	case StatusSkipped:
		p.Logger.Verbosef("Skipped %s: destination %s already exists", res.Source, res.Destination)
	case StatusDuplicate:
		p.Logger.Warnf("Skipped %s: content already imported as %s", res.Source, res.Existing)
	case StatusFailed:
		p.Logger.Warnf("Failed %s: %s: %v", res.Source, errors.KindOf(res.Err), res.Err)
	}
	for _, w := range res.Warnings {
		p.Logger.Warnf("%s", w)
	}
}
