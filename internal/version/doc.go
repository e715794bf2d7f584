// Package version carries the build metadata injected through ldflags.
package version
