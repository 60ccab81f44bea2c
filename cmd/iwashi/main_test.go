// This file is part of iwashi - https://github.com/db47h/iwashi
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/iwashi/vm"
	"github.com/google/go-cmp/cmp"
	"github.com/tliron/commonlog"
)

func Test_eotReader(t *testing.T) {
	r := &eotReader{r: strings.NewReader("ab\x04cd")}
	b, err := ioutil.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "ab" {
		t.Errorf("Expected %q, got %q", "ab", b)
	}
	if n, err := r.Read(make([]byte, 4)); n != 0 || err != io.EOF {
		t.Errorf("Expected 0, EOF after CTRL-D, got %d, %v", n, err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	fn := filepath.Join(dir, name)
	if err := ioutil.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func parse(t *testing.T, args ...string) (config, error) {
	var fl flags
	fs := flag.NewFlagSet("iwashi", flag.ContinueOnError)
	fl.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return loadConfig(fs, &fl)
}

func Test_loadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "iwashi")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fn := writeFile(t, dir, "iwashi.toml", `
raw = false
dump = true
verbosity = 1
with = ["a.txt"]
`)

	td := []struct {
		name string
		args []string
		exp  config
	}{
		{"defaults", nil, config{Raw: true}},
		{"flags", []string{"-noraw", "-debug", "-v", "2", "-with", "x", "-with", "y"},
			config{Debug: true, Verbosity: 2, With: []string{"x", "y"}}},
		{"file", []string{"-config", fn}, config{Dump: true, Verbosity: 1, With: []string{"a.txt"}}},
		{"override", []string{"-config", fn, "-v", "0", "-dump=false", "-with", "b.txt"},
			config{With: []string{"a.txt", "b.txt"}}},
	}
	for _, test := range td {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := parse(t, test.args...)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.exp, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_loadConfig_error(t *testing.T) {
	dir, err := ioutil.TempDir("", "iwashi")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	fn := writeFile(t, dir, "bad.toml", "raw = \n")
	if _, err = parse(t, "-config", fn); err == nil || !strings.HasPrefix(err.Error(), "config: ") {
		t.Errorf("Expected config error, got %v", err)
	}
	if _, err = parse(t, "-config", filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func Test_feed(t *testing.T) {
	dir, err := ioutil.TempDir("", "iwashi")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	a := writeFile(t, dir, "a.txt", "12\n")
	b := writeFile(t, dir, "b.txt", "30\n")

	in := vm.NewInputBuffer()
	feed(in, []string{a, filepath.Join(dir, "missing"), b}, strings.NewReader("x"), commonlog.GetLogger("test"))
	got, err := ioutil.ReadAll(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "12\n30\nx" {
		t.Errorf("Expected %q, got %q", "12\n30\nx", got)
	}
}
