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
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ocomsoft/mitre/internal/version"
)

var (
	cfgFile    string
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mitre",
	Short: "A polyglot database migration planner and executor",
	Long: `mitre loads a YAML configuration of named runner configurations,
discovers migration files under a directory, associates each with its
runner, reads the applied-migrations ledger from the designated state
store, and computes a totally ordered diff between what's on disk and
what's recorded applied.

Available commands:
- ls: show the plan as a diff table
- up: apply pending migrations
- down: roll back applied migrations
- extract-tags: print a file's parsed flags
- list-reserved-words: print the built-in reserved-word table
- show-config: print the loaded configuration`,
}

// GetRootCmd returns the root command for embedding in other applications
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	fmt.Printf("%s\n", version.GetDisplayVersion())
	if err := rootCmd.Execute(); err != nil && exitCode == 0 {
		exitCode = 1
	}
	switch exitCode {
	case 0:
	default:
		os.Exit(exitCode)
	}
}

// exitCode is set by subcommands that need to signal a specific exit
// status beyond cobra's own success/failure distinction: 1 when
// ls --check finds unskipped pending entries, 2 when up or down fails
// while executing. Any other command error exits 1.
var exitCode int

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "home-config", "", "CLI home config file (default: $HOME/.mitre.yaml)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "mitre.yaml", "Path to the mitre configuration YAML")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed processing information")
}

// initConfig reads in the CLI's own home-directory config file and ENV
// variables if set. This is separate from, and has no bearing on, the
// domain configuration internal/config.Loader decodes.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mitre")
	}

	viper.SetEnvPrefix("MITRE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using CLI config file:", viper.ConfigFileUsed())
	}
}
