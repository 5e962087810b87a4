package cmd

import (
	"context"

	"timingcfg/feature/fields"
	"timingcfg/feature/timing"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set FIELD VALUE FILE...",
	Short: "Set one field in each config",
	Long: `Set validates FIELD against the config schema and sets it to VALUE.
Only ephem and results-dir (inside noise) can be set. Every file is
rewritten even when the field is rejected.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runSet,
}

func init() {
	RootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	field, value, files := args[0], args[1], args[2:]

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	if !fields.IsSupported(field) {
		a.log.Warn("field cannot be set; files will be rewritten unchanged")
	}
	return runFiles(cmd.Context(), cmd.OutOrStdout(), a.log, files, func(ctx context.Context, path string) (*timing.Outcome, error) {
		return a.svc.SetField(ctx, path, field, value)
	})
}
