package webserver

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/r2dtools/sitediscovery/internal/logger"
)

// GetVhostConfigFileList returns regular files and symlinks under rootPath whose names end
// with one of extensions. Subdirectories are scanned only when recursive is set; an unreadable
// subdirectory is logged and skipped, an unreadable rootPath is an error.
// Files come back in directory order.
func GetVhostConfigFileList(rootPath string, extensions []string, recursive bool, log logger.Logger) ([]string, error) {
	entries, err := os.ReadDir(rootPath)

	if err != nil {
		return nil, &FileError{Path: rootPath, Err: err}
	}

	var files []string

	for _, entry := range entries {
		entryPath := filepath.Join(rootPath, entry.Name())

		if entry.IsDir() {
			if !recursive {
				continue
			}

			subFiles, err := GetVhostConfigFileList(entryPath, extensions, recursive, log)

			if err != nil {
				log.Warning("could not get vhost file list from '%s': %v", entryPath, err)
				continue
			}

			files = append(files, subFiles...)

			continue
		}

		if !isCandidateFile(entry.Type()) || !hasExtension(entry.Name(), extensions) {
			continue
		}

		files = append(files, entryPath)
	}

	return files, nil
}

func isCandidateFile(mode fs.FileMode) bool {
	return mode.IsRegular() || mode&fs.ModeSymlink != 0
}

func hasExtension(name string, extensions []string) bool {
	for _, extension := range extensions {
		if extension != "" && strings.HasSuffix(name, extension) {
			return true
		}
	}

	return false
}
