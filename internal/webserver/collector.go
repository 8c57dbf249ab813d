package webserver

import (
	"fmt"

	"github.com/r2dtools/sitediscovery/internal/dto"
	"github.com/r2dtools/sitediscovery/internal/logger"
	"github.com/unknwon/com"
)

type VhostCollector struct {
	parser *VhostParser
	logger logger.Logger
}

func CreateVhostCollector(parser *VhostParser, log logger.Logger) *VhostCollector {
	return &VhostCollector{parser: parser, logger: log}
}

// Collect parses every config file found under rootPath and concatenates the results in
// discovery order. A file that fails to parse contributes nothing; with haltOnError the first
// such failure stops the scan and is returned together with the vhosts gathered so far.
func (c *VhostCollector) Collect(rootPath string, dialect DialectConfig, haltOnError bool) ([]dto.VirtualHost, error) {
	if !com.IsDir(rootPath) {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, rootPath)
	}

	c.logger.Debug("get virtual hosts from %s configs in '%s'", dialect.Code, rootPath)

	files, err := GetVhostConfigFileList(rootPath, dialect.FileExtensions, dialect.IncludeSubdirs, c.logger)

	if err != nil {
		return nil, fmt.Errorf("unable to get vhost file list, possible reason: lack of permissions: %w", err)
	}

	var vhosts []dto.VirtualHost

	for _, file := range files {
		c.logger.Debug("analyze vhost file '%s'", file)
		fileVhosts, err := c.parser.Parse(file, dialect)

		if err != nil {
			c.logger.Error("unable to get virtual hosts from file: %v", err)

			if haltOnError {
				return vhosts, err
			}

			continue
		}

		vhosts = append(vhosts, fileVhosts...)
	}

	return vhosts, nil
}
