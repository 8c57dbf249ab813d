package webserver

import "regexp"

var (
	nginxSectionStartRegex = regexp.MustCompile(`^\s*server\s*\{`)
	nginxRedirectRegex     = regexp.MustCompile(`^\s*return\s+30[12]\s+\S+`)
	// listen [ip:]port [ssl] [http2] [default_server] ...;
	nginxPortRegex = regexp.MustCompile(
		`^\s*listen\s+(?:(?P<ip>\[[0-9a-fA-F:.]+\]|\d{1,3}(?:\.\d{1,3}){3}|\*):)?(?P<port>\d+)(?:\s+[a-zA-Z0-9_=]+)*\s*;`,
	)
	// the first name must be a plain hostname, "_" and regex names never match
	nginxDomainRegex = regexp.MustCompile(`^\s*server_name\s+(?P<domain>[a-zA-Z0-9.\-]+(?:\s+[^;#]*?)?)\s*;`)
)

func GetNginxDialectConfig(includeSubdirs bool, fileExtensions []string) DialectConfig {
	return DialectConfig{
		Code:          WebServerNginxCode,
		SectionStart:  nginxSectionStartRegex,
		RedirectToUrl: nginxRedirectRegex,
		Port:          nginxPortRegex,
		Domain:        nginxDomainRegex,
	}.WithScanOptions(includeSubdirs, fileExtensions)
}
