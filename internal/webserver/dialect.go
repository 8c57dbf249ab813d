package webserver

import (
	"regexp"
	"slices"
)

const (
	PortGroup   = "port"
	DomainGroup = "domain"
)

// DialectConfig holds the patterns that drive the vhost parser for one webserver family.
// Port and Domain patterns must expose named groups "port" and "domain".
// A DialectConfig is built once per scan and never changed afterwards.
type DialectConfig struct {
	Code           string
	SectionStart   *regexp.Regexp
	RedirectToUrl  *regexp.Regexp
	Port           *regexp.Regexp
	Domain         *regexp.Regexp
	IncludeSubdirs bool
	FileExtensions []string
}

// WithScanOptions returns a copy of the dialect with its own recursion flag and extensions.
func (d DialectConfig) WithScanOptions(includeSubdirs bool, fileExtensions []string) DialectConfig {
	d.IncludeSubdirs = includeSubdirs
	d.FileExtensions = slices.Clone(fileExtensions)

	return d
}

func (d DialectConfig) portFromLine(line string) (string, bool) {
	return namedGroup(d.Port, line, PortGroup)
}

func (d DialectConfig) domainFromLine(line string) (string, bool) {
	return namedGroup(d.Domain, line, DomainGroup)
}

func namedGroup(re *regexp.Regexp, line, group string) (string, bool) {
	if re == nil {
		return "", false
	}

	matches := re.FindStringSubmatch(line)

	if matches == nil {
		return "", false
	}

	index := re.SubexpIndex(group)

	if index < 0 {
		return "", false
	}

	return matches[index], true
}
