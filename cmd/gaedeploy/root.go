package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "gaedeploy",
		Short: "Deploy applications to Google App Engine from CI pipelines",
		Long: `gaedeploy wraps "gcloud app deploy" for calling pipelines: it locates the
deployment descriptor, merges environment variable overrides into it, runs
the deploy and the follow-up version describe, and publishes the deployed
version's identity and URL as named outputs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the CLI and returns the first error encountered.
func Execute() error {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", Version, BuildTime)
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; env vars prefixed GAEDEPLOY_ also apply)")
	rootCmd.AddCommand(deployCmd)
}
