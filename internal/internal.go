package internal

import "strings"

// Logger defines the logging contract shared by the service packages.
// Satisfied by *zap.SugaredLogger.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
}

// TrimFQDN strips the trailing root dot from a fully qualified domain name.
// DNS-originated hosts arrive as "example.com." while the lookup tables key
// on "example.com".
func TrimFQDN(host string) string {
	return strings.TrimSuffix(host, ".")
}
