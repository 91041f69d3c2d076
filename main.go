// runrotate is a grid puzzle platformer: walk, jump and rotate the whole
// level a quarter turn at a time to reach the exit.
//
// Usage:
//
//	runrotate play [--level name] [--aim-frames dir]   - Play
//	runrotate levels                                   - List embedded levels
//	runrotate stats <level>                            - Show best runs for a level
//
// Global flags:
//
//	--debug       - Verbose logging
//	--db <path>   - Run records database (default: ~/.runrotate/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagDebug  bool
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runrotate",
	Short: "Rotate the level, reach the exit",
	Long: `runrotate is a grid puzzle platformer. Every level is a square grid of
blocks, boxes, skulls and portals; the whole grid can be rotated a
quarter turn left or right to change which way is down.

Controls:
  A / D          - Walk left / right
  W / Space      - Jump
  Left, Z        - Rotate the level counterclockwise
  Right, X       - Rotate the level clockwise
  Esc / P        - Pause
  F5             - Copy the level layout to the clipboard`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runrotate/runs.db", "Path to run records database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(statsCmd)
}

func setupLogging() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "runrotate",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)
}
