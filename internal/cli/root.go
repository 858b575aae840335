// Package cli wires the cobra command tree: phorg import and
// phorg test, both operating on the same import pipeline.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appErrors "phorg/internal/errors"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "phorg",
	Short: "Organize photos into an album/timeline layout from their metadata",
	Long: `phorg imports photo files into a canonical directory layout derived
from their embedded metadata: albums/<album> or timeline/<year>-<month>,
a camera sub-folder, and a capture-timestamp filename.

Content that was already imported is skipped, so re-running an import
over the same sources is idempotent.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/phorg/config.toml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output directory for photos")
	rootCmd.PersistentFlags().BoolP("album-from-filename", "a", false, "derive the album from the enclosing folder name")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("dedupe-content", false, "skip files whose content is already indexed under another name")
	rootCmd.PersistentFlags().String("hash", "adler32", "content checksum algorithm (adler32 or murmur3)")
	rootCmd.PersistentFlags().String("provider", "exiftool", "metadata provider (exiftool or native)")
	rootCmd.PersistentFlags().String("exiftool-bin", "", "exiftool executable to invoke")

	for _, key := range []string{"output", "album-from-filename", "verbose", "dedupe-content", "hash", "provider", "exiftool-bin"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("PHORG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "phorg"))
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
