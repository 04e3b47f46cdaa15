// Package main is the single-binary entrypoint for Kopalnia Wiedzy.
package main

import "github.com/Romi-2023/kopalnia-wiedzy/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
