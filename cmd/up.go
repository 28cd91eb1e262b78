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

var dryRun bool

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long: `up computes the plan and applies every Pending, unskipped
migration in ascending version order: render its template, invoke its
runner, then record the application with the state store. The first
failure aborts the remaining sequence; the ledger reflects the prefix
of successfully applied migrations.`,
	RunE: runUp,
}

func init() {
	rootCmd.AddCommand(upCmd)
	upCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render every pending step without invoking runners or writing the ledger")
}

func runUp(cmd *cobra.Command, args []string) error {
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

	exec := executor.New(s.runners, s.bags, s.stateStore)
	if err := exec.Run(ctx, states, executor.Options{Direction: model.DirectionUp, DryRun: dryRun, Verbose: verbose}); err != nil {
		exitCode = 2
		return err
	}

	return nil
}
