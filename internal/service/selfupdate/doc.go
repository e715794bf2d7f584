// Package selfupdate replaces the running binary with a published build.
package selfupdate
