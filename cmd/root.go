package cmd

import (
	"fmt"
	"os"

	"timingcfg/core/logger"
	"timingcfg/feature/timing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags shared by every file command
	configDir       string
	overwrite       bool
	suffix          string
	releaseLocation string
	noiseDir        string
	dryRun          bool

	// Mode flags of the root command
	modes modeFlags
)

// modeFlags selects what the root command does with its files.
type modeFlags struct {
	check      bool
	roundtrip  bool
	addNoise   bool
	addOutlier bool
}

// selected returns the operation to run. When several flags are given the
// first of check, roundtrip, addnoise, addoutlier wins; "" means none.
func (m modeFlags) selected() string {
	switch {
	case m.check:
		return timing.OpCheck
	case m.roundtrip:
		return timing.OpRoundtrip
	case m.addNoise:
		return timing.OpAddNoise
	case m.addOutlier:
		return timing.OpAddOutlier
	default:
		return ""
	}
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "timingcfg [flags] FILE...",
	Short: "Maintain pulsar timing configuration files",
	Long: `timingcfg keeps timing configs in line with the current TOA release and
the current config schema, without disturbing key order or comments.

Examples:
  # Full check: reconcile with the release, add missing blocks, curate comments
  timingcfg --check J1713+0747.nb.yaml

  # Same, rewriting the files in place
  timingcfg -c -o configs/*.yaml

  # Parser fidelity check, writes J1713+0747.nb.yaml.rt
  timingcfg --roundtrip J1713+0747.nb.yaml`,
	Args:          cobra.ArbitraryArgs,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
	pf.BoolVarP(&overwrite, "overwrite", "o", false, "Rewrite files in place instead of writing suffixed copies")
	pf.StringVar(&suffix, "suffix", "", "Suffix for output copies (default from DOCUMENT_SUFFIX, normally \"fix\")")
	pf.StringVar(&releaseLocation, "release", "", "Release location, a directory or s3://bucket/prefix/ (default from RELEASE_LOCATION)")
	pf.StringVar(&noiseDir, "noise-dir", "", "results-dir for newly added noise blocks")
	pf.BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")

	f := RootCmd.Flags()
	f.BoolVarP(&modes.check, "check", "c", false, "Reconcile, add missing schema blocks and curate comments (debug logging)")
	f.BoolVarP(&modes.roundtrip, "roundtrip", "r", false, "Load and save each file to test round-trip fidelity")
	f.BoolVar(&modes.addNoise, "addnoise", false, "Add the noise block where missing")
	f.BoolVar(&modes.addOutlier, "addoutlier", false, "Add the outlier block where missing")
}

func runRoot(cmd *cobra.Command, args []string) error {
	mode := modes.selected()
	if mode == "" {
		return cmd.Help()
	}
	if len(args) == 0 {
		return fmt.Errorf("no files given")
	}

	a, err := newApp(mode == timing.OpCheck)
	if err != nil {
		return err
	}
	defer a.close()

	var op fileOp
	switch mode {
	case timing.OpCheck:
		op = a.svc.Check
	case timing.OpRoundtrip:
		op = a.svc.Roundtrip
	case timing.OpAddNoise:
		op = a.svc.AddNoise
	case timing.OpAddOutlier:
		op = a.svc.AddOutlier
	}
	return runFiles(cmd.Context(), cmd.OutOrStdout(), a.log, args, op)
}
