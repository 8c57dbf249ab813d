package dto

import "fmt"

const (
	DefaultHttpPort  = 80
	DefaultHttpsPort = 443
)

// VirtualHost is one reachable endpoint found in a webserver config.
// Two vhosts are the same when both domain and port are equal.
type VirtualHost struct {
	Domain string
	Port   int
}

func (v VirtualHost) String() string {
	return fmt.Sprintf("domain: %s, port: %d", v.Domain, v.Port)
}

func (v VirtualHost) HasStandardPort() bool {
	return v.Port == DefaultHttpPort || v.Port == DefaultHttpsPort
}
