package cmd

import (
	"github.com/spf13/cobra"
)

var curateCmd = &cobra.Command{
	Use:   "curate FILE...",
	Short: "Apply the canonical field annotations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.close()
		return runFiles(cmd.Context(), cmd.OutOrStdout(), a.log, args, a.svc.Curate)
	},
}

func init() {
	RootCmd.AddCommand(curateCmd)
}
