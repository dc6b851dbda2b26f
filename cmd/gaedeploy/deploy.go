package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/artpar/gaedeploy/internal/engine"
	"github.com/artpar/gaedeploy/internal/shell/gcloud"
	"github.com/artpar/gaedeploy/internal/shell/outputs"
)

// =============================================================================
// Deploy Command
// =============================================================================

// inputs binds the deploy flags to the environment: every input is settable
// as a flag, as INPUT_<NAME> (GitHub Actions convention), or as
// GAEDEPLOY_<NAME>. Flags win over the environment.
var inputs = viper.New()

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the working directory's app to App Engine",
	Long: `Deploys one or more deliverables with "gcloud app deploy" and publishes the
resulting version's identity and URL as named outputs. With no deliverables
given, the working directory is searched for an app.yaml descriptor.`,
	RunE: runDeploy,
}

// inputKeys maps viper keys to flag names, in declaration order.
var inputKeys = []struct {
	key  string
	flag string
}{
	{"project_id", "project-id"},
	{"working_directory", "working-directory"},
	{"deliverables", "deliverables"},
	{"image_url", "image-url"},
	{"env_vars", "env-vars"},
	{"version", "version"},
	{"promote", "promote"},
	{"flags", "flags"},
	{"gcloud_component", "gcloud-component"},
}

func init() {
	f := deployCmd.Flags()
	f.String("project-id", "", "Google Cloud project ID (defaults to the active gcloud project)")
	f.String("working-directory", "", "directory to deploy from (default current directory)")
	f.String("deliverables", "", "descriptor files to deploy, separated by commas or whitespace")
	f.String("image-url", "", "fully qualified container image URL to deploy")
	f.String("env-vars", "", "KEY=VALUE pairs merged into the descriptor's env_variables (overrides win)")
	f.String("version", "", "version label for the deployed version")
	f.String("promote", "", `route traffic to the new version: "true", "false", or empty (promote)`)
	f.String("flags", "", "extra flags passed through to gcloud app deploy verbatim")
	f.String("gcloud-component", "", `gcloud release track: "alpha", "beta", or empty`)
	f.Bool("dry-run", false, "assemble and print the deploy invocation without running it")

	bindInputs(f)
}

// bindInputs binds each input flag to its viper key and the matching
// INPUT_/GAEDEPLOY_ environment variables. Flags win over the environment.
func bindInputs(f *pflag.FlagSet) {
	for _, in := range inputKeys {
		if err := inputs.BindPFlag(in.key, f.Lookup(in.flag)); err != nil {
			panic(err)
		}
		envName := strings.ToUpper(in.key)
		if err := inputs.BindEnv(in.key, "INPUT_"+envName, "GAEDEPLOY_"+envName); err != nil {
			panic(err)
		}
	}
	if err := inputs.BindPFlag("dry_run", f.Lookup("dry-run")); err != nil {
		panic(err)
	}
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	logger := SetupLogger(cfg)

	in := engine.Inputs{
		ProjectID:        inputs.GetString("project_id"),
		WorkingDirectory: inputs.GetString("working_directory"),
		Deliverables:     inputs.GetString("deliverables"),
		ImageURL:         inputs.GetString("image_url"),
		EnvVars:          inputs.GetString("env_vars"),
		Version:          inputs.GetString("version"),
		Promote:          inputs.GetString("promote"),
		Flags:            inputs.GetString("flags"),
		Component:        inputs.GetString("gcloud_component"),
		DryRun:           inputs.GetBool("dry_run"),
	}

	cli := gcloud.NewCLI(cfg.Gcloud.Bin, logger)
	deployer := engine.NewDeployer(cli, cli, publisherFor(cfg), nil, logger)

	ctx := cmd.Context()
	if cfg.Gcloud.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Gcloud.Timeout)
		defer cancel()
	}

	report, err := deployer.Run(ctx, in)
	if err != nil {
		return err
	}
	if report.DryRun {
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Gcloud.Bin, strings.Join(report.DeployArgs, " "))
	}
	return nil
}

// publisherFor resolves the output destination: explicit config first, then
// the $GITHUB_OUTPUT convention, then stdout.
func publisherFor(cfg *Config) outputs.Publisher {
	path := cfg.Outputs.File
	if path == "" {
		path = os.Getenv("GITHUB_OUTPUT")
	}
	if path != "" {
		return &outputs.FileWriter{Path: path}
	}
	return &outputs.StdoutWriter{}
}
