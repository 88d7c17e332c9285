// Package build contains build and version information about mybin.
package build

// Version contains the current semantic version of mybin.
var Version = "0.4.0" //nolint:gochecknoglobals
