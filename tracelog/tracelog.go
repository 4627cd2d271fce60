// Package tracelog is the diagnostic-output collaborator named in the
// top-level design: a thin wrapper around the standard library log
// package, carrying the same three severities the original C sources
// (linux_log / LINUX_LOG_INFO|WARNING|ERROR) used. Within the lockhash
// package only the registry imports it (the table operations never
// log); the launcher and the demo driver use it as well.
package tracelog

import (
	"log"
	"os"
)

// Logger is the minimal interface tracelog's package-level functions
// delegate to. The default, std, writes to os.Stderr with the
// standard library's default timestamp prefix.
type Logger interface {
	Printf(format string, args ...any)
}

var std Logger = log.New(os.Stderr, "", log.LstdFlags)

// SetOutput replaces the package-level logger, e.g. to redirect the
// demo driver's diagnostics into a test's own log or a syslog shim.
func SetOutput(l Logger) {
	if l != nil {
		std = l
	}
}

// Infof logs an informational message: normal, expected state changes
// (a worker started, a table was registered).
func Infof(format string, args ...any) {
	std.Printf("INFO: "+format, args...)
}

// Warningf logs a recoverable condition the caller should know about
// but that does not abort the calling operation (e.g. a registry at
// capacity).
func Warningf(format string, args ...any) {
	std.Printf("WARNING: "+format, args...)
}

// Errorf logs a failed operation.
func Errorf(format string, args ...any) {
	std.Printf("ERROR: "+format, args...)
}
