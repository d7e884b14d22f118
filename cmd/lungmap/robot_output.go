package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/export"
	"github.com/vanderheijden86/lungmap/pkg/metrics"
	"github.com/vanderheijden86/lungmap/pkg/version"
)

type robotCatalogOutput struct {
	GeneratedAt string           `json:"generated_at"`
	Version     string           `json:"version"`
	Title       string           `json:"title"`
	Count       int              `json:"count"`
	Regions     []atlas.Region   `json:"regions"`
	Resources   []atlas.Resource `json:"resources"`
}

type robotHitOutput struct {
	X      float64       `json:"x"`
	Y      float64       `json:"y"`
	Hit    bool          `json:"hit"`
	Index  int           `json:"index"`
	Region *atlas.Region `json:"region"`
}

type robotMetricsOutput struct {
	Metrics []metrics.TimingStats `json:"metrics"`
}

func writeRobotJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRobotCatalog(w io.Writer, cat *atlas.Catalog) error {
	resources := cat.Resources()
	if resources == nil {
		resources = []atlas.Resource{}
	}
	return writeRobotJSON(w, robotCatalogOutput{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     version.Version,
		Title:       cat.Title(),
		Count:       cat.Len(),
		Regions:     cat.Regions(),
		Resources:   resources,
	})
}

func writeRobotHit(w io.Writer, cat *atlas.Catalog, px, py float64) error {
	out := robotHitOutput{X: px, Y: py, Index: cat.HitTest(px, py)}
	if out.Index >= 0 {
		r := cat.At(out.Index)
		out.Hit = true
		out.Region = &r
	}
	return writeRobotJSON(w, out)
}

func writeRobotMetrics(w io.Writer) error {
	stats := metrics.AllStats()
	if stats == nil {
		stats = []metrics.TimingStats{}
	}
	return writeRobotJSON(w, robotMetricsOutput{Metrics: stats})
}

var errBadPoint = errors.New("expected X,Y percentages between 0 and 100")

// parsePoint parses "X,Y" in percent space.
func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", errBadPoint, s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("%w: %q", errBadPoint, s)
	}
	if x < 0 || x > 100 || y < 0 || y > 100 {
		return 0, 0, fmt.Errorf("%w: %q", errBadPoint, s)
	}
	return x, y, nil
}

// exportSnapshots writes one snapshot per comma-separated path and returns
// the paths written.
func exportSnapshots(ctx context.Context, paths string, cat *atlas.Catalog, selected string, img image.Image) ([]string, error) {
	var all []export.SnapshotOptions
	var written []string
	for _, p := range strings.Split(paths, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		all = append(all, export.SnapshotOptions{
			Path:     p,
			Catalog:  cat,
			Selected: selected,
			Image:    img,
		})
		written = append(written, p)
	}
	if len(all) == 0 {
		return nil, export.ErrNoPath
	}
	if err := export.SaveSnapshots(ctx, all); err != nil {
		return nil, err
	}
	return written, nil
}
