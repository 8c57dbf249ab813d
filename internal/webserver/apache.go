package webserver

import "regexp"

var (
	// the section header carries the port, so it doubles as the port pattern
	apacheVhostPortRegex = regexp.MustCompile(`(?i)^\s*<VirtualHost\s+[^>]*:(?P<port>\d+)\s*>`)
	apacheRedirectRegex  = regexp.MustCompile(
		`(?i)^\s*Redirect(?:Permanent)?(?:\s+(?:permanent|temp|seeother|30[1-8]))?\s+/\s+https?://`,
	)
	apacheDomainRegex = regexp.MustCompile(`(?i)^\s*ServerName\s+(?P<domain>[a-zA-Z0-9.\-]+)(?::\d+)?\s*$`)
)

func GetApacheDialectConfig(includeSubdirs bool, fileExtensions []string) DialectConfig {
	return DialectConfig{
		Code:          WebServerApacheCode,
		SectionStart:  apacheVhostPortRegex,
		RedirectToUrl: apacheRedirectRegex,
		Port:          apacheVhostPortRegex,
		Domain:        apacheDomainRegex,
	}.WithScanOptions(includeSubdirs, fileExtensions)
}
