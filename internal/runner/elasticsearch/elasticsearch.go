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

// Package elasticsearch executes a rendered .es step as a raw request
// against the cluster, via gopkg.in/olivere/elastic.v5's low-level
// PerformRequest escape hatch — mitre dispatches whatever request body
// the migration author wrote, it does not build typed queries.
package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	elastic "gopkg.in/olivere/elastic.v5"

	"github.com/ocomsoft/mitre/internal/model"
)

// Runner issues one Elasticsearch request per step.
type Runner struct {
	client *elastic.Client
	rc     model.RunnerConfiguration
}

func New(rc model.RunnerConfiguration) (*Runner, error) {
	host := rc.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := rc.Port
	if port == 0 {
		port = 9200
	}
	client, err := elastic.NewClient(
		elastic.SetURL(fmt.Sprintf("http://%s:%d", host, port)),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch %q: %w", rc.Name, err)
	}
	return &Runner{client: client, rc: rc}, nil
}

// Execute parses rendered as "METHOD /path\n\n<body>" and performs the
// request against the cluster.
func (r *Runner) Execute(ctx context.Context, rendered string) error {
	method, path, body, err := parseRequest(rendered)
	if err != nil {
		return fmt.Errorf("elasticsearch %q: %w", r.rc.Name, err)
	}

	resp, err := r.client.PerformRequest(ctx, elastic.PerformRequestOptions{
		Method: method,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("elasticsearch %q: %w", r.rc.Name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("elasticsearch %q: %s %s returned status %d", r.rc.Name, method, path, resp.StatusCode)
	}

	return nil
}

func (r *Runner) Close() error { return nil }

func parseRequest(rendered string) (method, path, body string, err error) {
	lines := strings.SplitN(rendered, "\n", 2)
	fields := strings.Fields(lines[0])
	if len(fields) != 2 {
		return "", "", "", fmt.Errorf("first line must be \"METHOD /path\", got %q", lines[0])
	}
	method = strings.ToUpper(fields[0])
	path = fields[1]
	if len(lines) == 2 {
		body = strings.TrimPrefix(lines[1], "\n")
	}
	return method, path, body, nil
}
