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
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ocomsoft/mitre/internal/filename"
)

var extractTagsCmd = &cobra.Command{
	Use:   "extract-tags <path>",
	Short: "Print a migration filename's parsed version, slug, flags, and configuration name",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractTags,
}

func init() {
	rootCmd.AddCommand(extractTagsCmd)
}

func runExtractTags(cmd *cobra.Command, args []string) error {
	path := args[0]
	base := filepath.Base(path)

	parsed, err := filename.Parse(base)
	if err != nil {
		return err
	}

	fmt.Printf("version:            %d\n", parsed.Version)
	fmt.Printf("slug:               %s\n", parsed.Slug)
	fmt.Printf("flags:              %s\n", strings.Join(parsed.Flags, ", "))
	fmt.Printf("configuration_name: %s\n", parsed.ConfigurationName)
	fmt.Printf("extension:          %s\n", parsed.Extension)
	return nil
}
