package app

import (
	"io/fs"
	"path/filepath"

	"phorg/internal/domain"
)

// Discover walks root (a file or a directory) and returns every entry
// with a jpg or jpeg extension, matched case-insensitively.
func Discover(fsys FileSystem, root string) ([]domain.SourceItem, error) {
	var items []domain.SourceItem
	err := fsys.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !domain.IsJPEG(filepath.Ext(d.Name())) {
			return nil
		}
		items = append(items, domain.SourceItem{Path: path, Root: root})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
