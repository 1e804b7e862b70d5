package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"activity-flags/internal/config"
	"activity-flags/internal/domain"
	"activity-flags/internal/gateway"
	"activity-flags/internal/logger"
	"activity-flags/internal/usecase"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd *cobra.Command
	version string
}

// NewCLIApp creates the activityflags command tree.
func NewCLIApp(version string) *CLIApp {
	app := &CLIApp{version: version}

	rootCmd := &cobra.Command{
		Use:           "activityflags",
		Short:         "Derive monthly per-product activity flags from the transactional ledger",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "activityflags version: %s\n" .Version}}`)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run extract, transform and load for one reference date",
		Args:  cobra.NoArgs,
		RunE:  app.runCommand,
	}
	runCmd.Flags().StringP("config", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	runCmd.Flags().StringP("date", "d", "", "Reference date (YYYY-MM-DD)")
	runCmd.Flags().StringSlice("catalog", nil, "Product codes to flag, overriding the configuration (comma-separated)")
	_ = runCmd.MarkFlagRequired("date")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "Print the activity window for a reference date",
		Args:  cobra.NoArgs,
		RunE:  app.windowCommand,
	}
	windowCmd.Flags().StringP("date", "d", "", "Reference date (YYYY-MM-DD)")
	_ = windowCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(runCmd, windowCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// loadConfig reads the configuration file when one is given and applies flag overrides.
func (app *CLIApp) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	catalog, _ := cmd.Flags().GetStringSlice("catalog")

	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(catalog) > 0 {
		cfg.Catalog = catalog
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	referenceDate, _ := cmd.Flags().GetString("date")

	cfg, err := app.loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.Configure(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	ctx := logger.WithContext(cmd.Context(), log)

	// --- Dependency Injection (Wiring the application) ---
	comps, err := buildComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := comps.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close clients")
		}
	}()

	catalog := cfg.ProductCatalog()
	pipeline := usecase.NewActivityFlagsPipeline(
		comps.source,
		comps.artifacts,
		comps.sink,
		gateway.NewCSVCodec(catalog),
		usecase.NewTransformer(catalog),
	)

	// --- Execute the Usecase ---
	report, runErr := pipeline.Run(ctx, referenceDate)

	// --- Present the Output ---
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(output))
	printStatus(cmd.ErrOrStderr(), report)

	return runErr
}

func (app *CLIApp) windowCommand(cmd *cobra.Command, args []string) error {
	referenceDate, _ := cmd.Flags().GetString("date")

	ref, err := domain.ParseReferenceDate(referenceDate)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), domain.NewActivityWindow(ref).String())
	return nil
}

func printStatus(w io.Writer, report *domain.RunReport) {
	if report.State == domain.RunStateLoaded {
		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		fmt.Fprintf(w, "%s run %s: %d flag rows loaded\n", green(string(report.State)), report.RunID, report.FlagRows)
		return
	}

	red := color.New(color.FgRed, color.Bold).SprintFunc()
	stage := report.FailedStage
	if stage == "" {
		stage = "validation"
	}
	fmt.Fprintf(w, "%s run %s at %s: %s\n", red(string(report.State)), report.RunID, stage, report.Error)
}
