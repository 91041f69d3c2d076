package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/runrotate/levels"
	"github.com/milk9111/runrotate/stats"
)

var (
	flagLimit      int
	flagAllVersion bool
)

var statsCmd = &cobra.Command{
	Use:   "stats <level>",
	Short: "Show the fastest runs for a level",
	Long: `Display the fastest winning runs for a level, fewest ticks first.
Runs recorded against an older revision of the level file are hidden
unless --all-versions is set.

Examples:
  runrotate stats level1
  runrotate stats level3 --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	statsCmd.Flags().BoolVar(&flagAllVersion, "all-versions", false, "Include runs on other revisions of the level")
}

func runStats(cmd *cobra.Command, args []string) error {
	def, err := levels.Load(args[0])
	if err != nil {
		return err
	}
	store, err := stats.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	fingerprint := def.Fingerprint
	if flagAllVersion {
		fingerprint = 0
	}
	runs, err := store.Best(def.Name, fingerprint, flagLimit)
	if err != nil {
		return err
	}
	deaths, err := store.Deaths(def.Name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Best runs - %s (%d deaths recorded)\n\n", def.Name, deaths)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No wins recorded yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-4s  %-7s  %-9s  %s\n", "Rank", "Ticks", "Rotations", "Date")
	fmt.Fprintf(out, "  %-4s  %-7s  %-9s  %s\n", "----", "-----", "---------", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-7d  %-9d  %s\n", i+1, r.Ticks, r.Rotations, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
