package main

import (
	"fmt"

	"pschat/pkg/version"
)

// printVersion prints the version information
func printVersion() {
	fmt.Printf("pschat version %s\n", version.Summary())
	fmt.Printf("  commit: %s\n", version.Commit)
	fmt.Printf("  built: %s\n", version.Date)
	fmt.Printf("  go: %s\n", version.GoVersion)
	fmt.Printf("  platform: %s\n", version.Platform())
}
