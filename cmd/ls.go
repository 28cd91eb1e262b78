/*
MIT License

# Copyright (c) 2025 OcomSoft

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ocomsoft/mitre/internal/model"
)

var checkFlag bool

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "Show the migration plan as a diff table",
	Long: `ls loads the configuration, discovers migrations, reads the
applied-migrations ledger, and prints the resulting plan: one row per
migration with its status (Applied, Pending, Pending(Skipped: <tag>),
or Orphaned).

With --check, ls exits 1 if any entry is Pending and not skipped,
without printing the table — suited to CI gating.`,
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVar(&checkFlag, "check", false, "Exit 1 if any unskipped migration is pending, without printing")
}

func runLs(cmd *cobra.Command, args []string) error {
	s, err := openSession(configFile)
	if err != nil {
		return err
	}
	defer s.close()

	states, err := discoverAndPlan(context.Background(), s)
	if err != nil {
		return err
	}

	if checkFlag {
		for _, st := range states {
			if st.Status == model.StatusPending && !st.IsSkipped() {
				exitCode = 1
				return nil
			}
		}
		return nil
	}

	printPlan(states)
	return nil
}

func printPlan(states []model.MigrationState) {
	applied := color.New(color.FgGreen).SprintFunc()
	pending := color.New(color.FgYellow).SprintFunc()
	skipped := color.New(color.FgYellow, color.Faint).SprintFunc()
	orphaned := color.New(color.FgRed).SprintFunc()

	fmt.Printf("%-16s %-8s %-30s %s\n", "VERSION", "STATUS", "CONFIGURATION", "SLUG")
	for _, st := range states {
		m := st.Migration
		var status string
		switch {
		case st.Status == model.StatusApplied:
			status = applied("Applied")
		case st.Status == model.StatusPending && st.IsSkipped():
			status = skipped(fmt.Sprintf("Pending(Skipped: %s)", st.Skipped))
		case st.Status == model.StatusPending:
			status = pending("Pending")
		default:
			status = orphaned("Orphaned")
		}
		fmt.Printf("%-16d %-8s %-30s %s\n", m.Version, status, m.ConfigurationName, m.Slug)
	}
}
