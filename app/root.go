// Package app implements the main application commands.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// EnvConfigDir names the config directory when --config is not given.
	EnvConfigDir = "ADCU_ADMIN_CONFIG"

	keyConfigDir = "config"
)

var rootCmd = &cobra.Command{
	Use:   "adcu-admin",
	Short: "ADCU Admin is the administrative web front-end of the ADCU backend",
	Long: `ADCU Admin is the administrative web front-end of the ADCU backend.
It manages users, contracts, documents and analysis data with role based access
for administrators, staff and contractors.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(keyConfigDir, "./etc/", "directory holding main.toml")

	_ = viper.BindPFlag(keyConfigDir, rootCmd.PersistentFlags().Lookup(keyConfigDir))
	_ = viper.BindEnv(keyConfigDir, EnvConfigDir)
}

// configDir is the config directory from flag or env, with a trailing slash.
func configDir() string {
	dir := viper.GetString(keyConfigDir)
	if dir == "" {
		return ""
	}

	if !strings.HasSuffix(dir, "/") {
		dir += "/"
	}

	return dir
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
