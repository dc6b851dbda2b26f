package main

import (
	"fmt"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitConfigError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gaedeploy: %v\n", err)
		if isConfigError(err) {
			return ExitConfigError
		}
		return ExitFailure
	}
	return ExitSuccess
}
