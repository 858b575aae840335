package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"phorg/internal/app"
	"phorg/internal/config"
	appErrors "phorg/internal/errors"
	"phorg/internal/index"
	"phorg/internal/infra/exifnative"
	"phorg/internal/infra/exiftool"
	"phorg/internal/infra/fs"
	"phorg/internal/logging"
	"phorg/internal/presentation"
	"phorg/internal/tui"
)

var importCmd = &cobra.Command{
	Use:   "import [paths...]",
	Short: "Import photos into the output directory",
	Long: `Import discovers jpg/jpeg files under the given paths, derives each
photo's destination from its metadata, copies it unless it was already
imported, and records its content checksum in photohash.db.

Per-photo failures are logged and do not stop the run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(viper.GetViper(), args)
		if err != nil {
			return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
		}
		return runImport(cmd, cfg)
	},
}

func init() {
	importCmd.Flags().BoolP("interactive", "i", false, "confirm and watch the import in a terminal UI")
	if err := viper.BindPFlag("interactive", importCmd.Flags().Lookup("interactive")); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, cfg config.Config) error {
	logger := logging.New(os.Stderr, cfg.Verbose)

	store, err := index.Open(cfg.OutputDir)
	if err != nil {
		// The one fatal failure: no item is processed without the index.
		return appErrors.Wrap(appErrors.StoreInit, "open index", cfg.OutputDir, err)
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
	}

	if cfg.Interactive {
		return runInteractive(cmd, cfg, pipeline)
	}

	report, err := pipeline.Run(cmd.Context(), cfg.Inputs)
	if err != nil {
		return err
	}

	printer := presentation.Printer{Writer: cmd.OutOrStdout(), Verbose: cfg.Verbose}
	printer.PrintReport(report)
	return nil
}

func runInteractive(cmd *cobra.Command, cfg config.Config, pipeline *app.Pipeline) error {
	items, err := pipeline.DiscoverAll(cfg.Inputs)
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Config{
		OutputDir: cfg.OutputDir,
		Items:     items,
		Run: func(progress app.ProgressFunc) (app.Report, error) {
			pipeline.OnProgress = progress
			return pipeline.RunItems(cmd.Context(), items)
		},
	})

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.Model); ok && m.Err != nil {
		return m.Err
	}
	return nil
}

func metadataProvider(cfg config.Config) app.MetadataProvider {
	if cfg.Provider == config.ProviderNative {
		return exifnative.Provider{}
	}
	return exiftool.Provider{Binary: cfg.ExiftoolBin}
}
