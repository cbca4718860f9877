// Copyright 2025 The gVisor Authors.
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

package cli

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/walteh/xio/pkg/fileio"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xioctl.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
strategy = "reopen"
duplicate_by = "path"
disable_atomic_append = true
log_level = "debug"
lock = true
`)
	conf, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := &Config{
		Strategy:            "reopen",
		DuplicateBy:         "path",
		DisableAtomicAppend: true,
		LogLevel:            "debug",
		Lock:                true,
	}
	if diff := cmp.Diff(want, conf); diff != "" {
		t.Errorf("LoadConfig mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, path := range []string{"", writeConfig(t, "")} {
		conf, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q): %v", path, err)
		}
		if diff := cmp.Diff(DefaultConfig(), conf); diff != "" {
			t.Errorf("LoadConfig(%q) mismatch (-want +got):\n%s", path, diff)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown key": `stratgey = "reopen"`,
		"bad type":    `lock = "yes"`,
		"bad syntax":  `strategy = `,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, content)); err == nil {
				t.Errorf("LoadConfig succeeded")
			}
		})
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("LoadConfig of a missing file succeeded")
	}
}

func TestOverride(t *testing.T) {
	conf, err := LoadConfig(writeConfig(t, "strategy = \"reopen\"\nlock = true\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	flagConf := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flagConf.RegisterFlags(fs)
	if err := fs.Parse([]string{"-duplicate-by=handle", "-log-level=warn"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	conf.Override(fs, flagConf)

	want := &Config{
		Strategy:    "reopen",
		DuplicateBy: "handle",
		LogLevel:    "warn",
		Lock:        true,
	}
	if diff := cmp.Diff(want, conf); diff != "" {
		t.Errorf("Override mismatch (-want +got):\n%s", diff)
	}
}

func TestOptions(t *testing.T) {
	conf := &Config{Strategy: "reopen", DuplicateBy: "path", DisableAtomicAppend: true}
	opts, err := conf.Options()
	if err != nil {
		t.Fatalf("Options: %v", err)
	}
	if opts.Strategy != fileio.StrategyReopen || opts.DuplicateBy != fileio.DuplicateByPath || !opts.DisableAtomicAppend {
		t.Errorf("Options = %+v", opts)
	}
	if opts.Logger == nil {
		t.Errorf("Options did not set a logger")
	}

	for _, bad := range []*Config{{Strategy: "mmap"}, {DuplicateBy: "inode"}} {
		if _, err := bad.Options(); err == nil || !strings.Contains(err.Error(), "unknown") {
			t.Errorf("Options(%+v) error = %v, want unknown value", bad, err)
		}
	}
}

func TestApplyLogLevel(t *testing.T) {
	if err := (&Config{LogLevel: "verbose"}).ApplyLogLevel(); err == nil {
		t.Errorf("ApplyLogLevel(verbose) succeeded")
	}
	if err := (&Config{LogLevel: "info"}).ApplyLogLevel(); err != nil {
		t.Errorf("ApplyLogLevel(info): %v", err)
	}
}
