package cmd

import (
	"github.com/spf13/cobra"
)

// reconcileCmd reconciles tim-directory and toas only.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile FILE...",
	Short: "Sync tim-directory and toas with the current TOA release",
	Long: `Reconcile compares each config's tim-directory and toas against the
release and rewrites the config only when one of them is out of date.
A toa-type that disagrees with the file name is reported, never changed.

Examples:
  # Report only
  timingcfg reconcile --dry-run J1713+0747.nb.yaml

  # Against a release in object storage, in place
  timingcfg reconcile --release s3://toas/releases/latest/ -o *.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReconcile,
}

func init() {
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.close()

	a.log.Info("Starting reconciliation")
	return runFiles(cmd.Context(), cmd.OutOrStdout(), a.log, args, a.svc.Reconcile)
}
