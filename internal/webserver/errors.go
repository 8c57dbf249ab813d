package webserver

import (
	"errors"
	"fmt"
)

var ErrRootNotFound = errors.New("vhost root path does not exist or is not a directory")

// FileError reports a config file or directory that could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("could not read '%s': %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
