package site

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/r2dtools/sitediscovery/internal/dto"
)

const wwwPrefix = "www."

// GetSitesFromVhosts maps vhosts to sites. Domains starting with "www." are dropped
// unless includeWwwDomains is set.
func GetSitesFromVhosts(vhosts []dto.VirtualHost, includeWwwDomains bool) []dto.Site {
	return lo.FilterMap(vhosts, func(vhost dto.VirtualHost, _ int) (dto.Site, bool) {
		if !includeWwwDomains && strings.HasPrefix(strings.ToLower(vhost.Domain), wwwPrefix) {
			return dto.Site{}, false
		}

		return GetSite(vhost), true
	})
}

func GetSite(vhost dto.VirtualHost) dto.Site {
	return dto.Site{
		Name: GetSiteName(vhost.Domain, vhost.Port),
		URL:  GetUrl(vhost.Domain, vhost.Port),
	}
}

func GetUrl(domain string, port int) string {
	switch port {
	case dto.DefaultHttpPort:
		return fmt.Sprintf("http://%s", domain)
	case dto.DefaultHttpsPort:
		return fmt.Sprintf("https://%s", domain)
	default:
		return fmt.Sprintf("http://%s:%d", domain, port)
	}
}

// GetSiteName: 443 keeps the bare domain, 80 gets an "_http" suffix and any other
// port is appended after a colon.
func GetSiteName(domain string, port int) string {
	switch port {
	case dto.DefaultHttpPort:
		return fmt.Sprintf("%s_http", domain)
	case dto.DefaultHttpsPort:
		return domain
	default:
		return fmt.Sprintf("%s:%d", domain, port)
	}
}
