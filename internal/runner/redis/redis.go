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

// Package redis executes a rendered .redis step: one command per
// non-blank line, space-separated, dispatched through go-redis's
// generic Do escape hatch rather than its typed command methods, since
// a migration step can contain any command the author wrote.
package redis

import (
	"context"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ocomsoft/mitre/internal/model"
)

// Runner issues one or more Redis commands per step.
type Runner struct {
	client *goredis.Client
	rc     model.RunnerConfiguration
}

func New(rc model.RunnerConfiguration) (*Runner, error) {
	host := rc.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := rc.Port
	if port == 0 {
		port = 6379
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: rc.Password,
		DB:       rc.DatabaseNumber,
	})
	return &Runner{client: client, rc: rc}, nil
}

// Execute runs every non-blank line of rendered as a separate command.
func (r *Runner) Execute(ctx context.Context, rendered string) error {
	for _, line := range strings.Split(rendered, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		args := make([]interface{}, len(fields))
		for i, f := range fields {
			args[i] = f
		}
		if err := r.client.Do(ctx, args...).Err(); err != nil && err != goredis.Nil {
			return fmt.Errorf("redis %q: %q: %w", r.rc.Name, line, err)
		}
	}
	return nil
}

func (r *Runner) Close() error {
	return r.client.Close()
}
