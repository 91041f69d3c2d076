package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/runrotate/grid"
	"github.com/milk9111/runrotate/levels"
	"github.com/milk9111/runrotate/obj"
	"github.com/milk9111/runrotate/prefabs"
)

var (
	flagLayout bool
	flagRotate []string
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the embedded levels",
	Long: `List the embedded levels in play order with their grid size and
fingerprint. --layout also prints each level's grid:

  #  block     x  skull    O  portal
  E  exit      P  player   B  box

--rotate applies quarter turns before printing, e.g.
  runrotate levels --layout --rotate right --rotate right`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagLayout, "layout", false, "Print each level's grid")
	levelsCmd.Flags().StringSliceVar(&flagRotate, "rotate", nil, "Quarter turns (left|right) to apply before printing the layout")
}

func runLevels(cmd *cobra.Command, args []string) error {
	tuning, err := prefabs.LoadTuningSpec()
	if err != nil {
		return err
	}
	turns := make([]grid.Direction, 0, len(flagRotate))
	for _, r := range flagRotate {
		dir, err := grid.ParseDirection(r)
		if err != nil {
			return err
		}
		turns = append(turns, dir)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-10s  %-6s  %-5s  %s\n", "Level", "Grid", "Cell", "Fingerprint")
	fmt.Fprintf(out, "  %-10s  %-6s  %-5s  %s\n", "-----", "----", "----", "-----------")
	for _, name := range levels.Names() {
		def, err := levels.Load(name)
		if err != nil {
			return err
		}
		size := fmt.Sprintf("%dx%d", def.Cells(), def.Cells())
		fmt.Fprintf(out, "  %-10s  %-6s  %-5d  %016x\n", def.Name, size, def.CellSize, def.Fingerprint)
		if flagLayout {
			l := obj.NewLevel(def, tuning)
			for _, dir := range turns {
				l.Rotate(dir, nil)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, l.Layout())
		}
	}
	return nil
}
