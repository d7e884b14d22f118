package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
)

// AssertRegionCount verifies the expected number of regions.
func AssertRegionCount(t *testing.T, cat *atlas.Catalog, expected int) {
	t.Helper()
	if cat.Len() != expected {
		t.Errorf("expected %d regions, got %d", expected, cat.Len())
	}
}

// AssertValid verifies the catalog passes validation.
func AssertValid(t *testing.T, cat *atlas.Catalog) {
	t.Helper()
	if err := cat.Validate(); err != nil {
		t.Errorf("catalog invalid: %v", err)
	}
}

// AssertNoOverlap verifies that no two region rectangles intersect.
func AssertNoOverlap(t *testing.T, cat *atlas.Catalog) {
	t.Helper()
	regions := cat.Regions()
	for i := range regions {
		for j := i + 1; j < len(regions); j++ {
			if overlaps(regions[i].Position, regions[j].Position) {
				t.Errorf("%s overlaps %s", regions[i].Name, regions[j].Name)
			}
		}
	}
}

// AssertHit verifies which region the percent point (px, py) hits. An empty
// want asserts a miss.
func AssertHit(t *testing.T, cat *atlas.Catalog, px, py float64, want string) {
	t.Helper()
	i := cat.HitTest(px, py)
	switch {
	case want == "" && i >= 0:
		t.Errorf("(%g, %g) hit %s, want a miss", px, py, cat.At(i).Name)
	case want != "" && i < 0:
		t.Errorf("(%g, %g) missed, want %s", px, py, want)
	case want != "" && cat.At(i).Name != want:
		t.Errorf("(%g, %g) hit %s, want %s", px, py, cat.At(i).Name, want)
	}
}

// AssertJSONEqual compares two values after JSON round-tripping.
// Useful for comparing structs that may have different Go representations
// but equivalent JSON forms.
func AssertJSONEqual(t *testing.T, expected, actual any) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}

	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}

	if !bytes.Equal(expectedJSON, actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// Center returns the percent point at the middle of r's rectangle.
func Center(r atlas.Region) (float64, float64) {
	p := r.Position
	return p.Left + p.Width/2, p.Top + p.Height/2
}

// WriteCatalogFile writes cat as YAML to dir/name and returns the path.
func WriteCatalogFile(t *testing.T, dir, name string, cat *atlas.Catalog) string {
	t.Helper()

	var buf bytes.Buffer
	if err := atlas.Encode(&buf, cat); err != nil {
		t.Fatalf("failed to encode catalog: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

func overlaps(a, b atlas.Rect) bool {
	return a.Left < b.Left+b.Width && b.Left < a.Left+a.Width &&
		a.Top < b.Top+b.Height && b.Top < a.Top+a.Height
}
