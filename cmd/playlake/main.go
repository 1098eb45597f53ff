// Package main provides the playlake CLI application.
// playlake builds a star-schema warehouse from raw listening logs and
// the song catalog.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
