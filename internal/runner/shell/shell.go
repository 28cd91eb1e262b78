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

// Package shell executes a rendered bash/sh step as a script passed on
// stdin to the named interpreter via os/exec — no ecosystem shell-exec
// library in the corpus beats the standard library for this.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/ocomsoft/mitre/internal/model"
)

// Runner invokes an interpreter ("bash" or "sh") with the rendered
// script on stdin.
type Runner struct {
	interpreter string
	rc          model.RunnerConfiguration
}

func New(rc model.RunnerConfiguration, interpreter string) *Runner {
	return &Runner{interpreter: interpreter, rc: rc}
}

// Execute runs rendered through the interpreter, failing on a non-zero
// exit status.
func (r *Runner) Execute(ctx context.Context, rendered string) error {
	cmd := exec.CommandContext(ctx, r.interpreter)
	cmd.Stdin = bytes.NewBufferString(rendered)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %q: %w: %s", r.interpreter, r.rc.Name, err, stderr.String())
	}
	return nil
}

func (r *Runner) Close() error { return nil }
