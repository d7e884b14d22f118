package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/config"
	"github.com/vanderheijden86/lungmap/pkg/export"
	"github.com/vanderheijden86/lungmap/pkg/metrics"
	"github.com/vanderheijden86/lungmap/pkg/testutil"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		x, y    float64
		wantErr bool
	}{
		{"50,20", 50, 20, false},
		{" 12.5 , 80 ", 12.5, 80, false},
		{"0,100", 0, 100, false},
		{"50", 0, 0, true},
		{"a,b", 0, 0, true},
		{"-1,5", 0, 0, true},
		{"50,101", 0, 0, true},
	}
	for _, tt := range tests {
		x, y, err := parsePoint(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errBadPoint) {
				t.Errorf("parsePoint(%q) err = %v, want errBadPoint", tt.in, err)
			}
			continue
		}
		if err != nil || x != tt.x || y != tt.y {
			t.Errorf("parsePoint(%q) = %g, %g, %v; want %g, %g", tt.in, x, y, err, tt.x, tt.y)
		}
	}
}

func TestWriteRobotCatalog(t *testing.T) {
	var buf bytes.Buffer
	cat := atlas.Default()
	if err := writeRobotCatalog(&buf, cat); err != nil {
		t.Fatal(err)
	}
	var out robotCatalogOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != cat.Len() || len(out.Regions) != cat.Len() {
		t.Errorf("count = %d, regions = %d, want %d", out.Count, len(out.Regions), cat.Len())
	}
	testutil.AssertJSONEqual(t, cat.Regions(), out.Regions)
	if len(out.Resources) != len(cat.Resources()) {
		t.Errorf("resources = %d, want %d", len(out.Resources), len(cat.Resources()))
	}
	if !strings.Contains(buf.String(), `"learn_more_url"`) {
		t.Error("region fields should use snake_case keys")
	}
}

func TestWriteRobotHit(t *testing.T) {
	cat := atlas.Default()
	trachea, _ := cat.Lookup("Trachea")
	p := trachea.Position

	var buf bytes.Buffer
	if err := writeRobotHit(&buf, cat, p.Left+p.Width/2, p.Top+1); err != nil {
		t.Fatal(err)
	}
	var hit robotHitOutput
	if err := json.Unmarshal(buf.Bytes(), &hit); err != nil {
		t.Fatal(err)
	}
	if !hit.Hit || hit.Region == nil {
		t.Fatalf("expected a hit, got %s", buf.String())
	}
	if want := cat.HitTest(p.Left+p.Width/2, p.Top+1); hit.Index != want || hit.Region.Name != cat.At(want).Name {
		t.Errorf("hit = %d/%s, want %d", hit.Index, hit.Region.Name, want)
	}

	nested := testutil.QuickNested(4)
	buf.Reset()
	if err := writeRobotHit(&buf, nested, 50, 50); err != nil {
		t.Fatal(err)
	}
	var inner robotHitOutput
	if err := json.Unmarshal(buf.Bytes(), &inner); err != nil {
		t.Fatal(err)
	}
	if inner.Index != 3 || inner.Region == nil || inner.Region.Name != nested.At(3).Name {
		t.Errorf("centre of nested catalog should hit the innermost region, got %s", buf.String())
	}

	buf.Reset()
	if err := writeRobotHit(&buf, testutil.Single(), 5, 5); err != nil {
		t.Fatal(err)
	}
	var miss robotHitOutput
	if err := json.Unmarshal(buf.Bytes(), &miss); err != nil {
		t.Fatal(err)
	}
	if miss.Hit || miss.Index != -1 || miss.Region != nil {
		t.Errorf("expected a miss, got %s", buf.String())
	}
}

func TestWriteRobotMetrics(t *testing.T) {
	metrics.ResetAll()
	t.Cleanup(metrics.ResetAll)

	var buf bytes.Buffer
	if err := writeRobotMetrics(&buf); err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	list, ok := out["metrics"].([]any)
	if !ok || len(list) != 0 {
		t.Errorf("empty metrics should encode as an empty list: %s", buf.String())
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Catalog = "/from/file.yaml"
	applyFlags(&cfg, "", "", false, false, false)
	if cfg.Catalog != "/from/file.yaml" || !cfg.MouseEnabled() || !cfg.WatchEnabled() {
		t.Errorf("empty flags changed config: %+v", cfg)
	}

	applyFlags(&cfg, "lungs.yaml", "lungs.png", true, true, true)
	if cfg.Catalog != "lungs.yaml" || cfg.Image != "lungs.png" {
		t.Errorf("paths not overridden: %+v", cfg)
	}
	if cfg.MouseEnabled() || cfg.WatchEnabled() || !cfg.UI.Markdown {
		t.Errorf("switches not applied: %+v", cfg)
	}
}

func TestLoadCatalog(t *testing.T) {
	cat, err := loadCatalog("")
	if err != nil || cat.Len() != atlas.Default().Len() {
		t.Fatalf("built-in catalog: %v", err)
	}

	grid := testutil.QuickGrid(2, 3)
	path := testutil.WriteCatalogFile(t, t.TempDir(), "grid.yaml", grid)
	cat, err = loadCatalog(path)
	if err != nil {
		t.Fatalf("file catalog: %v", err)
	}
	testutil.AssertJSONEqual(t, grid.Regions(), cat.Regions())

	if _, err := loadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing catalog")
	}
}

func TestExportSnapshots(t *testing.T) {
	dir := t.TempDir()
	paths := filepath.Join(dir, "a.svg") + ", " + filepath.Join(dir, "b.md") + ","
	written, err := exportSnapshots(context.Background(), paths, atlas.Default(), "Trachea", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v, want 2 paths", written)
	}
	for _, p := range written {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s: %v", p, err)
		}
	}

	if _, err := exportSnapshots(context.Background(), " , ", atlas.Default(), "", nil); !errors.Is(err, export.ErrNoPath) {
		t.Errorf("blank list err = %v, want ErrNoPath", err)
	}
	if _, err := exportSnapshots(context.Background(), filepath.Join(dir, "c.svg"), atlas.Default(), "Heart", nil); !errors.Is(err, export.ErrUnknownRegion) {
		t.Errorf("unknown region err = %v", err)
	}
}

func TestProgramOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	if got := len(programOptions(cfg)); got != 2 {
		t.Errorf("mouse on: %d options, want alt screen + mouse", got)
	}
	off := false
	cfg.UI.Mouse = &off
	if got := len(programOptions(cfg)); got != 1 {
		t.Errorf("mouse off: %d options, want alt screen only", got)
	}
}

func TestShouldSuppressTTYQueries(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"lungmap"}, false},
		{[]string{"lungmap", "--catalog", "x.yaml"}, false},
		{[]string{"lungmap", "--robot-catalog"}, true},
		{[]string{"lungmap", "--robot-hit", "1,2"}, true},
		{[]string{"lungmap", "--export=out.svg"}, true},
		{[]string{"lungmap", "--version"}, true},
	}
	for _, tt := range tests {
		if got := shouldSuppressTTYQueries(tt.args, false, false); got != tt.want {
			t.Errorf("shouldSuppressTTYQueries(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
	if !shouldSuppressTTYQueries([]string{"lungmap"}, true, false) {
		t.Error("LUNGMAP_ROBOT should suppress")
	}
	if !shouldSuppressTTYQueries([]string{"lungmap"}, false, true) {
		t.Error("LUNGMAP_TEST_MODE should suppress")
	}
}

func TestRun_ExitCodes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	tests := []struct {
		name       string
		args       []string
		code       int
		wantStdout string
		wantStderr string
	}{
		{"version", []string{"--version"}, 0, "lungmap ", ""},
		{"help", []string{"--help"}, 0, "Usage: lungmap", ""},
		{"unknown flag", []string{"--nope"}, 2, "", "flag provided but not defined"},
		{"missing catalog", []string{"--catalog", missing}, 1, "", "Error loading catalog"},
		{"bad point", []string{"--robot-hit", "x"}, 2, "", "--robot-hit"},
		{"select without export", []string{"--select", "Trachea"}, 2, "", "--select only applies to --export"},
		{"robot catalog", []string{"--robot-catalog"}, 0, `"regions"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.code {
				t.Fatalf("exit code = %d, want %d\nstderr: %s", code, tt.code, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
			if tt.code != 0 && stdout.Len() != 0 {
				t.Errorf("errors must not go to stdout: %q", stdout.String())
			}
		})
	}
}

func TestRun_ExportWritesFiles(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "lungs.svg")

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--export", out, "--select", "Alveoli"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Exported "+out) {
		t.Errorf("stdout = %q", stdout.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}
