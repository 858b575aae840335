package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind string

const (
	InvalidConfig       Kind = "invalid_config"
	IOFailure           Kind = "io_failure"
	MetadataUnavailable Kind = "metadata_unavailable"
	MissingTimestamp    Kind = "missing_timestamp"
	StoreInit           Kind = "store_init"
	PathEncoding        Kind = "path_encoding"
	Internal            Kind = "internal"
)

type AppError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *AppError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Wrap(kind Kind, op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Kind: kind,
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// KindOf reports the kind carried by err, or Internal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func UserMessage(err error) string {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return err.Error()
	}
	switch appErr.Kind {
	case InvalidConfig:
		return fmt.Sprintf("Invalid configuration: %v", appErr.Err)
	case IOFailure:
		return fmt.Sprintf("I/O error: %s", appErr.Path)
	case MetadataUnavailable:
		return fmt.Sprintf("Metadata unavailable: %s", appErr.Path)
	case MissingTimestamp:
		return fmt.Sprintf("No capture timestamp: %s", appErr.Path)
	case StoreInit:
		return fmt.Sprintf("Checksum index could not be opened: %v", appErr.Err)
	case PathEncoding:
		return fmt.Sprintf("Path not representable: %s", appErr.Path)
	default:
		return fmt.Sprintf("Unexpected error: %v", appErr.Err)
	}
}
