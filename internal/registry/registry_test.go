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
package registry

import (
	"testing"

	"github.com/ocomsoft/mitre/internal/model"
)

func TestAcceptsExtension_MatchesSpecTable(t *testing.T) {
	cases := []struct {
		driver model.Driver
		ext    string
		want   bool
	}{
		{model.DriverMySQL, "sql", true},
		{model.DriverMySQL, "pgsql", false},
		{model.DriverPostgreSQL, "sql", true},
		{model.DriverPostgreSQL, "pgsql", true},
		{model.DriverCurl, "curl", true},
		{model.DriverElasticsearch, "es", true},
		{model.DriverElasticsearch, "curl", true},
		{model.DriverRedis, "redis", true},
		{model.DriverBash, "sh", true},
		{model.DriverBash, "bash", true},
		{model.DriverRedis, "sql", false},
	}
	for _, c := range cases {
		if got := AcceptsExtension(c.driver, c.ext); got != c.want {
			t.Errorf("AcceptsExtension(%s, %s) = %v, want %v", c.driver, c.ext, got, c.want)
		}
	}
}

func TestCanStoreState_OnlyPersistentDriversQualify(t *testing.T) {
	for _, d := range []model.Driver{model.DriverMySQL, model.DriverMariaDB, model.DriverPostgreSQL} {
		if !CanStoreState(d) {
			t.Errorf("expected %s to be able to store state", d)
		}
	}
	for _, d := range []model.Driver{model.DriverCurl, model.DriverElasticsearch, model.DriverRedis, model.DriverBash, model.DriverSh} {
		if CanStoreState(d) {
			t.Errorf("expected %s not to be able to store state", d)
		}
	}
}

func TestIsKnownDriver_RejectsUnknownDriver(t *testing.T) {
	if IsKnownDriver(model.Driver("sqlite")) {
		t.Errorf("expected sqlite to be unknown")
	}
	if !IsKnownDriver(model.DriverMySQL) {
		t.Errorf("expected mysql to be known")
	}
}
