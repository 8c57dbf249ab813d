package webserver

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/r2dtools/sitediscovery/internal/dto"
	"github.com/r2dtools/sitediscovery/internal/logger"
)

// FilterByDomainMasks drops vhosts whose domain fully matches any of masks.
// Blank masks are ignored, an invalid mask is logged and skipped.
func FilterByDomainMasks(vhosts []dto.VirtualHost, masks []string, log logger.Logger) []dto.VirtualHost {
	var maskRegexes []*regexp.Regexp

	for _, mask := range masks {
		if strings.TrimSpace(mask) == "" {
			continue
		}

		regex, err := regexp.Compile("^(?:" + mask + ")$")

		if err != nil {
			log.Warning("invalid domain mask '%s', skip it: %v", mask, err)
			continue
		}

		maskRegexes = append(maskRegexes, regex)
	}

	return lo.Filter(vhosts, func(vhost dto.VirtualHost, _ int) bool {
		for _, regex := range maskRegexes {
			if regex.MatchString(vhost.Domain) {
				log.Debug("vhost domain '%s' has been filtered by mask '%s'", vhost.Domain, regex)
				return false
			}
		}

		return true
	})
}

// FilterVhosts removes duplicate domain+port pairs keeping the first occurrence.
// Unless includeCustomPorts is set, only vhosts on 80 and 443 are kept.
func FilterVhosts(vhosts []dto.VirtualHost, includeCustomPorts bool) []dto.VirtualHost {
	var fVhosts []dto.VirtualHost

	for _, vhost := range vhosts {
		if !includeCustomPorts && !vhost.HasStandardPort() {
			continue
		}

		if containsVhost(fVhosts, vhost) {
			continue
		}

		fVhosts = append(fVhosts, vhost)
	}

	return fVhosts
}

func containsVhost(vhosts []dto.VirtualHost, vhost dto.VirtualHost) bool {
	return lo.ContainsBy(vhosts, func(item dto.VirtualHost) bool {
		return item.Domain == vhost.Domain && item.Port == vhost.Port
	})
}
