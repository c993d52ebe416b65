// Package version reports the build of the mapswitch binary.
//
// Version and commit can be stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/mapkit/version.Version=1.2.0" ./cmd/mapswitch
package version
