package webserver

import (
	"strings"

	"github.com/r2dtools/sitediscovery/internal/logger"
	"github.com/shirou/gopsutil/host"
)

// DomainResolver supplies a domain for a section that declares a port but no server name.
type DomainResolver interface {
	ResolveDomain() (string, bool)
}

type hostInfoFunc func() (*host.InfoStat, error)

// HostnameResolver falls back to the machine hostname. "localhost" never resolves.
type HostnameResolver struct {
	logger   logger.Logger
	hostInfo hostInfoFunc
	hostname *string
}

func (r *HostnameResolver) ResolveDomain() (string, bool) {
	if r.hostname == nil {
		hostname := ""
		info, err := r.hostInfo()

		if err != nil {
			r.logger.Warning("could not get server hostname: %v", err)
		} else {
			hostname = strings.TrimSpace(info.Hostname)
		}

		r.hostname = &hostname
	}

	if *r.hostname == "" || strings.EqualFold(*r.hostname, "localhost") {
		return "", false
	}

	return *r.hostname, true
}

func CreateHostnameResolver(log logger.Logger) *HostnameResolver {
	return &HostnameResolver{logger: log, hostInfo: host.Info}
}
