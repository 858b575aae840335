package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"phorg/internal/app"
	"phorg/internal/config"
	appErrors "phorg/internal/errors"
	"phorg/internal/index"
	"phorg/internal/infra/fs"
	"phorg/internal/logging"
	"phorg/internal/presentation"
)

var testCmd = &cobra.Command{
	Use:   "test [paths...]",
	Short: "Dry-run an import and report what would happen",
	Long: `Test runs the full import pipeline without copying anything: photos
are discovered, hashed and resolved against their metadata, and each
would-be destination is reported. The output directory and the
checksum index are left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(viper.GetViper(), args)
		if err != nil {
			return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
		}
		return runTest(cmd, cfg)
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, cfg config.Config) error {
	logger := logging.New(os.Stderr, cfg.Verbose)

	// Read-only view of the index so duplicate reporting still works
	// against an existing library.
	store, err := index.Load(cfg.OutputDir)
	if err != nil {
		return appErrors.Wrap(appErrors.StoreInit, "load index", cfg.OutputDir, err)
	}

	pipeline := &app.Pipeline{
		FS:                fs.OSFS{},
		Metadata:          metadataProvider(cfg),
		Index:             store,
		Logger:            logger,
		OutputDir:         cfg.OutputDir,
		AlbumFromFilename: cfg.AlbumFromFilename,
		DedupeContent:     cfg.DedupeContent,
		Hash:              cfg.Hash,
		DryRun:            true,
	}

	report, err := pipeline.Run(cmd.Context(), cfg.Inputs)
	if err != nil {
		return err
	}

	printer := presentation.Printer{Writer: cmd.OutOrStdout(), Verbose: cfg.Verbose, DryRun: true}
	printer.PrintReport(report)
	return nil
}
