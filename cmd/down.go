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

	"github.com/spf13/cobra"

	"github.com/ocomsoft/mitre/internal/executor"
	"github.com/ocomsoft/mitre/internal/model"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	Long: `down computes the plan and, walking Applied and Orphaned entries
in descending version order, invokes each migration's "down" step and
removes its ledger row. Orphaned entries (in the ledger but no longer on
disk) are rolled back from their retained ledger source. Migrations with
no "down" step (the change-form) cannot be rolled back and are skipped.`,
	RunE: runDown,
}

func init() {
	rootCmd.AddCommand(downCmd)
	downCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render every step without invoking runners or writing the ledger")
}

func runDown(cmd *cobra.Command, args []string) error {
	s, err := openSession(configFile)
	if err != nil {
		return err
	}
	defer s.close()

	ctx := context.Background()
	states, err := discoverAndPlan(ctx, s)
	if err != nil {
		return err
	}

	var rollbackCandidates []model.MigrationState
	for _, st := range states {
		if st.Status == model.StatusApplied || st.Status == model.StatusOrphaned {
			st.Status = model.StatusPending
			rollbackCandidates = append(rollbackCandidates, st)
		}
	}

	exec := executor.New(s.runners, s.bags, s.stateStore)
	if err := exec.Run(ctx, rollbackCandidates, executor.Options{Direction: model.DirectionDown, DryRun: dryRun, Verbose: verbose}); err != nil {
		exitCode = 2
		return err
	}

	return nil
}
