package main

import (
	"codeberg.org/capworks/portal/internal/config"
	"codeberg.org/capworks/portal/internal/presenter"
	"github.com/spf13/cobra"
)

// builds the portal command tree. running without a subcommand starts the TUI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portal",
		Short:         "Terminal client for the cap hiring platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.PersistentFlags().String("dictionary", "", "YAML file with extra error texts (default: $PORTAL_DICTIONARY)")

	tui := newTUICmd()
	root.RunE = tui.RunE

	root.AddCommand(tui)
	root.AddCommand(newProbeCmd())
	root.AddCommand(newExplainCmd())

	return root
}

// builds the deriver from the shipped dictionary plus the optional override
// file; the --dictionary flag wins over the configured path
func newDeriver(cmd *cobra.Command, cfg *config.Config) (*presenter.Deriver, error) {
	dictionary := presenter.DefaultDictionary()

	path, _ := cmd.Flags().GetString("dictionary")
	if path == "" && cfg != nil {
		path = cfg.DictionaryPath
	}

	if path != "" {
		overrides, err := presenter.LoadDictionary(path)
		if err != nil {
			return nil, err
		}
		dictionary = dictionary.Merge(overrides)
	}

	return presenter.NewDeriver(dictionary, presenter.DefaultTexts()), nil
}
