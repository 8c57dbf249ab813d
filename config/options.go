package config

const (
	NginxRootOpt           = "nginx_root"
	ApacheRootOpt          = "apache_root"
	RecursiveOpt           = "recursive"
	VhostFileExtensionsOpt = "vhost_file_extensions"
	DomainIgnoreMasksOpt   = "domain_ignore_masks"
	IncludeCustomPortsOpt  = "include_custom_ports"
	IncludeWwwOpt          = "include_www"
	HaltOnParseErrorsOpt   = "halt_on_parse_errors"
	UseDataPropertyOpt     = "use_data_property"
	HostnameFallbackOpt    = "hostname_fallback"
	LogLevelOpt            = "log_level"
	DebugOpt               = "debug"
)

// flagNames maps option keys to the command line flags bound to them.
var flagNames = map[string]string{
	NginxRootOpt:           "nginx-vhosts-path",
	ApacheRootOpt:          "apache-vhosts-path",
	RecursiveOpt:           "recursive",
	VhostFileExtensionsOpt: "vhost-file-extensions",
	DomainIgnoreMasksOpt:   "domain-ignore-masks",
	IncludeCustomPortsOpt:  "include-custom-ports",
	IncludeWwwOpt:          "include-www",
	HaltOnParseErrorsOpt:   "halt-on-parse-errors",
	UseDataPropertyOpt:     "use-data-property",
	HostnameFallbackOpt:    "hostname-fallback",
	LogLevelOpt:            "log-level",
	DebugOpt:               "debug",
}

func FlagName(option string) string {
	return flagNames[option]
}
