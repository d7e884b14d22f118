// Package testutil provides catalog fixture generators for tests.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
)

// GeneratorConfig controls catalog generation.
type GeneratorConfig struct {
	Seed       int64  // Random seed for determinism (0 = 42)
	Title      string // Catalog title (default: "Fixture")
	NamePrefix string // Prefix for region names (default: "Region")
	LinkBase   string // Base URL for generated links (default: "https://example.org")
	Resources  int    // Number of resource cards to attach
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:       42,
		Title:      "Fixture",
		NamePrefix: "Region",
		LinkBase:   "https://example.org",
	}
}

// Generator creates catalogs with various region layouts.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	def := DefaultConfig()
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.Title == "" {
		cfg.Title = def.Title
	}
	if cfg.NamePrefix == "" {
		cfg.NamePrefix = def.NamePrefix
	}
	if cfg.LinkBase == "" {
		cfg.LinkBase = def.LinkBase
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Grid tiles the container with rows×cols regions that never overlap.
// Region i sits at row i/cols, column i%cols. Cell sizes are whole
// percentages, so a thin margin may remain on the right and bottom.
func (g *Generator) Grid(rows, cols int) *atlas.Catalog {
	w, h := 100/cols, 100/rows
	regions := make([]atlas.Region, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			regions = append(regions, g.region(len(regions), atlas.Rect{
				Left:   float64(c * w),
				Top:    float64(r * h),
				Width:  float64(w),
				Height: float64(h),
			}))
		}
	}
	return atlas.New(g.cfg.Title, regions, g.resources())
}

// Nested creates depth concentric regions, each strictly inside the one
// before it. The innermost region is last, so it wins every overlap.
func (g *Generator) Nested(depth int) *atlas.Catalog {
	step := 45 / depth
	if step < 1 {
		step = 1
	}
	regions := make([]atlas.Region, 0, depth)
	for i := 0; i < depth; i++ {
		inset := float64(i * step)
		regions = append(regions, g.region(i, atlas.Rect{
			Left:   inset,
			Top:    inset,
			Width:  100 - 2*inset,
			Height: 100 - 2*inset,
		}))
	}
	return atlas.New(g.cfg.Title, regions, g.resources())
}

// Random creates n regions at random whole-percent positions. Regions may
// overlap.
func (g *Generator) Random(n int) *atlas.Catalog {
	regions := make([]atlas.Region, 0, n)
	for i := 0; i < n; i++ {
		left := g.rng.Intn(90)
		top := g.rng.Intn(90)
		w := 1 + g.rng.Intn(min(40, 100-left))
		h := 1 + g.rng.Intn(min(40, 100-top))
		regions = append(regions, g.region(i, atlas.Rect{
			Left:   float64(left),
			Top:    float64(top),
			Width:  float64(w),
			Height: float64(h),
		}))
	}
	return atlas.New(g.cfg.Title, regions, g.resources())
}

func (g *Generator) region(i int, r atlas.Rect) atlas.Region {
	n := i + 1
	return atlas.Region{
		Name:         fmt.Sprintf("%s %d", g.cfg.NamePrefix, n),
		Description:  fmt.Sprintf("Description of %s %d.", g.cfg.NamePrefix, n),
		LearnMoreURL: fmt.Sprintf("%s/learn/%d", g.cfg.LinkBase, n),
		VideoURL:     fmt.Sprintf("%s/video/%d", g.cfg.LinkBase, n),
		Position:     r,
	}
}

func (g *Generator) resources() []atlas.Resource {
	var out []atlas.Resource
	for i := 0; i < g.cfg.Resources; i++ {
		kind := atlas.ResourcePresentation
		if i%2 == 1 {
			kind = atlas.ResourceDocument
		}
		out = append(out, atlas.Resource{
			Title:   fmt.Sprintf("Resource %d", i+1),
			Summary: "Fixture resource.",
			URL:     fmt.Sprintf("%s/resource/%d", g.cfg.LinkBase, i+1),
			Kind:    kind,
		})
	}
	return out
}

// ============================================================================
// Quick helpers
// ============================================================================

// QuickGrid creates a rows×cols grid catalog with default config.
func QuickGrid(rows, cols int) *atlas.Catalog {
	return NewDefault().Grid(rows, cols)
}

// QuickNested creates a nested catalog with default config.
func QuickNested(depth int) *atlas.Catalog {
	return NewDefault().Nested(depth)
}

// QuickRandom creates a random catalog with default config.
func QuickRandom(n int) *atlas.Catalog {
	return NewDefault().Random(n)
}

// Single creates a catalog with one region covering the middle of the
// container.
func Single() *atlas.Catalog {
	g := NewDefault()
	return atlas.New(g.cfg.Title, []atlas.Region{
		g.region(0, atlas.Rect{Left: 25, Top: 25, Width: 50, Height: 50}),
	}, nil)
}
