package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gwcli/internal/core/ports/driving"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `View and change settings stored in config.toml.

Keys:
  oauth.redirect_port       local port for the redirect listener (default 3000)
  oauth.scopes              comma or space separated scopes
  oauth.timeout_seconds     give up waiting for the browser after N seconds (0 = never)
  output.format             text, json or tsv
  ratelimit.<surface>.rps   requests per second for drive, docs, sheets or slides
  ratelimit.<surface>.burst burst size for the same surfaces`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configResetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Restore a setting's default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configResetCmd)
	rootCmd.AddCommand(configCmd)
}

func settingsService() (*Services, driving.SettingsService, error) {
	s, err := getServices()
	if err != nil {
		return nil, nil, err
	}
	if s.Settings == nil {
		return nil, nil, errors.New("settings service not configured")
	}
	return s, s.Settings, nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	s, settings, err := settingsService()
	if err != nil {
		return err
	}

	values, err := settings.Values()
	if err != nil {
		return err
	}

	keys := settings.Keys()
	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, values[key]})
	}

	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.table(values, []string{"KEY", "VALUE"}, rows)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	s, settings, err := settingsService()
	if err != nil {
		return err
	}

	if err := settings.Set(args[0], args[1]); err != nil {
		return err
	}

	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.status(map[string]string{args[0]: args[1]}, "Set %s = %s", args[0], args[1])
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	s, settings, err := settingsService()
	if err != nil {
		return err
	}

	if err := settings.Reset(args[0]); err != nil {
		return err
	}

	p, err := newPrinter(cmd, s)
	if err != nil {
		return err
	}
	return p.status(map[string]string{"reset": args[0]}, "Reset %s", args[0])
}
