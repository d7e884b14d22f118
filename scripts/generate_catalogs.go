//go:build ignore

// generate_catalogs.go writes fixture catalogs for trying --catalog and live
// reload by hand.
// Usage: go run scripts/generate_catalogs.go
//
// Creates:
//
//	testdata/catalogs/grid.yaml    (4x4 tiles, no overlap)
//	testdata/catalogs/nested.yaml  (6 concentric regions)
//	testdata/catalogs/random.yaml  (30 overlapping regions)
//	testdata/catalogs/lungs.yaml   (the built-in lungs)
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/testutil"
)

type catalogSpec struct {
	name string
	desc string
	make func(*testutil.Generator) *atlas.Catalog
}

var catalogs = []catalogSpec{
	{"grid", "4x4 tiles", func(g *testutil.Generator) *atlas.Catalog { return g.Grid(4, 4) }},
	{"nested", "6 concentric regions", func(g *testutil.Generator) *atlas.Catalog { return g.Nested(6) }},
	{"random", "30 overlapping regions", func(g *testutil.Generator) *atlas.Catalog { return g.Random(30) }},
	{"lungs", "built-in lungs", func(*testutil.Generator) *atlas.Catalog { return atlas.Default() }},
}

func main() {
	outputDir := "testdata/catalogs"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	for i, spec := range catalogs {
		fmt.Printf("Generating %s catalog (%s)...\n", spec.name, spec.desc)

		cfg := testutil.DefaultConfig()
		cfg.Seed = int64(i + 1) // Reproducible per catalog
		cfg.Title = spec.desc
		cfg.Resources = 2
		cat := spec.make(testutil.New(cfg))

		if err := cat.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Generated %s is invalid: %v\n", spec.name, err)
			os.Exit(1)
		}

		var buf bytes.Buffer
		if err := atlas.Encode(&buf, cat); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode %s: %v\n", spec.name, err)
			os.Exit(1)
		}

		outputPath := filepath.Join(outputDir, spec.name+".yaml")
		if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", outputPath, err)
			os.Exit(1)
		}

		fmt.Printf("  Written %s (%d bytes, %d regions)\n", outputPath, buf.Len(), cat.Len())
	}

	fmt.Println("\nDone! Catalogs created in", outputDir)
}
