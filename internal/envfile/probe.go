package envfile

import "os"

// Prober reports whether a regular file exists at a path. Discovery and
// loading take it as an interface so tests can run against a fake filesystem.
type Prober interface {
	Exists(path string) bool
}

// OSProber probes the real filesystem.
type OSProber struct{}

// Exists reports whether path names an existing regular file.
func (OSProber) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
