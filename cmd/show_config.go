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
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ocomsoft/mitre/internal/config"
	"github.com/ocomsoft/mitre/internal/registry"
)

var showConfigCmd = &cobra.Command{
	Use:   "show-config <path>",
	Short: "Print the loaded configuration",
	Long: `show-config loads the YAML configuration at the given path (or
the --config default) and prints every named runner configuration with
its driver, resolved capabilities, and whether it is the state store.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShowConfig,
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}

func runShowConfig(cmd *cobra.Command, args []string) error {
	path := configFile
	if len(args) == 1 {
		path = args[0]
	}

	cfg, err := config.New(verbose).Load(path)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("%s %s\n", bold("migrations_directory:"), cfg.MigrationsDirectory)
	fmt.Println()

	for _, name := range cfg.LoadOrder {
		rc := cfg.Runners[name]
		entry, _ := registry.Lookup(rc.Driver)
		role := ""
		if name == "mitre" {
			role = cyan(" (state store)")
		}
		fmt.Printf("%s%s\n", bold(name), role)
		fmt.Printf("  driver:       %s\n", rc.Driver)
		fmt.Printf("  extensions:   %v\n", entry.Extensions)
		fmt.Printf("  capabilities: execute=%v store_state=%v transact=%v\n",
			entry.Capabilities.CanExecute, entry.Capabilities.CanStoreState, entry.Capabilities.CanTransact)
		if rc.Host != "" {
			fmt.Printf("  host:         %s:%d\n", rc.Host, rc.Port)
		}
		if rc.Database != "" {
			fmt.Printf("  database:     %s\n", rc.Database)
		}
		fmt.Println()
	}

	return nil
}
