package webserver

import (
	"errors"
	"fmt"

	"github.com/r2dtools/sitediscovery/internal/dto"
	"github.com/r2dtools/sitediscovery/internal/logger"
)

const (
	WebServerNginxCode  = "nginx"
	WebServerApacheCode = "apache"
)

func GetSupportedWebServers() []string {
	return []string{WebServerNginxCode, WebServerApacheCode}
}

type WebServer interface {
	GetCode() string
	GetRoot() string
	GetVhosts() ([]dto.VirtualHost, error)
}

type ScanOptions struct {
	Recursive         bool
	FileExtensions    []string
	HaltOnParseErrors bool
}

type ConfigWebServer struct {
	root      string
	dialect   DialectConfig
	collector *VhostCollector
	halt      bool
}

func (w *ConfigWebServer) GetCode() string {
	return w.dialect.Code
}

func (w *ConfigWebServer) GetRoot() string {
	return w.root
}

func (w *ConfigWebServer) GetVhosts() ([]dto.VirtualHost, error) {
	return w.collector.Collect(w.root, w.dialect, w.halt)
}

func GetDialectConfig(webServerCode string, includeSubdirs bool, fileExtensions []string) (DialectConfig, error) {
	switch webServerCode {
	case WebServerNginxCode:
		return GetNginxDialectConfig(includeSubdirs, fileExtensions), nil
	case WebServerApacheCode:
		return GetApacheDialectConfig(includeSubdirs, fileExtensions), nil
	default:
		return DialectConfig{}, fmt.Errorf("webserver '%s' is not supported", webServerCode)
	}
}

func GetWebServer(webServerCode, root string, options ScanOptions, collector *VhostCollector) (WebServer, error) {
	dialect, err := GetDialectConfig(webServerCode, options.Recursive, options.FileExtensions)

	if err != nil {
		return nil, err
	}

	return &ConfigWebServer{
		root:      root,
		dialect:   dialect,
		collector: collector,
		halt:      options.HaltOnParseErrors,
	}, nil
}

// DiscoverVhosts concatenates the vhosts of all webservers. A webserver whose root is missing
// contributes nothing; any other failure stops the discovery.
func DiscoverVhosts(webServers []WebServer, log logger.Logger) ([]dto.VirtualHost, error) {
	var vhosts []dto.VirtualHost

	for _, webServer := range webServers {
		wVhosts, err := webServer.GetVhosts()

		if errors.Is(err, ErrRootNotFound) {
			log.Info("%s vhosts path '%s' not found, skip it", webServer.GetCode(), webServer.GetRoot())
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("could not get %s vhosts: %w", webServer.GetCode(), err)
		}

		log.Debug("found %d %s vhosts", len(wVhosts), webServer.GetCode())
		vhosts = append(vhosts, wVhosts...)
	}

	return vhosts, nil
}
