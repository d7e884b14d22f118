package atlas

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validation errors.
var (
	ErrEmptyName     = errors.New("region name is empty")
	ErrDuplicateName = errors.New("duplicate region name")
	ErrInvalidRect   = errors.New("invalid region rectangle")
	ErrInvalidURL    = errors.New("invalid link URL")
	ErrEmptyCatalog  = errors.New("catalog has no regions")
)

// Catalog is an ordered, read-only set of regions and resource cards.
// A Catalog is never modified after construction; every accessor returns
// values or copies, so a *Catalog can be shared freely.
type Catalog struct {
	title     string
	regions   []Region
	resources []Resource
	byName    map[string]int
}

// New builds a catalog from the given regions and resources. The slices are
// copied. New does not validate; use Validate for untrusted input.
func New(title string, regions []Region, resources []Resource) *Catalog {
	c := &Catalog{
		title:     title,
		regions:   append([]Region(nil), regions...),
		resources: append([]Resource(nil), resources...),
		byName:    make(map[string]int, len(regions)),
	}
	for i, r := range c.regions {
		key := nameKey(r.Name)
		if _, dup := c.byName[key]; !dup {
			c.byName[key] = i
		}
	}
	return c
}

// Title returns the diagram title.
func (c *Catalog) Title() string { return c.title }

// Len returns the number of regions.
func (c *Catalog) Len() int { return len(c.regions) }

// At returns the region at index i. It panics if i is out of range, like a
// slice index.
func (c *Catalog) At(i int) Region { return c.regions[i] }

// Regions returns a copy of the ordered region list.
func (c *Catalog) Regions() []Region {
	return append([]Region(nil), c.regions...)
}

// Resources returns a copy of the resource cards.
func (c *Catalog) Resources() []Resource {
	return append([]Resource(nil), c.resources...)
}

// Index returns the position of the named region, or -1.
func (c *Catalog) Index(name string) int {
	if i, ok := c.byName[nameKey(name)]; ok {
		return i
	}
	return -1
}

// Lookup finds a region by name (case-insensitive).
func (c *Catalog) Lookup(name string) (Region, bool) {
	i := c.Index(name)
	if i < 0 {
		return Region{}, false
	}
	return c.regions[i], true
}

// Contains reports whether r is a record of this catalog: same name and
// identical fields.
func (c *Catalog) Contains(r Region) bool {
	got, ok := c.Lookup(r.Name)
	return ok && got == r
}

// HitTest returns the index of the last region whose rectangle contains the
// percent point (px, py), or -1. Later regions are drawn on top of earlier
// ones, so they win overlaps.
func (c *Catalog) HitTest(px, py float64) int {
	for i := len(c.regions) - 1; i >= 0; i-- {
		if c.regions[i].Position.Contains(px, py) {
			return i
		}
	}
	return -1
}

// Validate checks names, rectangles and links of every region and resource.
// All problems are joined into a single error.
func (c *Catalog) Validate() error {
	if len(c.regions) == 0 {
		return ErrEmptyCatalog
	}

	var errs []error
	seen := make(map[string]bool, len(c.regions))
	for i, r := range c.regions {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("region %d: %w", i, ErrEmptyName))
			continue
		}
		key := nameKey(name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("region %d: %w: %q", i, ErrDuplicateName, r.Name))
		}
		seen[key] = true

		if err := r.Position.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("region %q: %w", r.Name, err))
		}
		if err := validateLink(r.LearnMoreURL); err != nil {
			errs = append(errs, fmt.Errorf("region %q learn_more_url: %w", r.Name, err))
		}
		if err := validateLink(r.VideoURL); err != nil {
			errs = append(errs, fmt.Errorf("region %q video_url: %w", r.Name, err))
		}
	}
	for i, res := range c.resources {
		if err := validateLink(res.URL); err != nil {
			errs = append(errs, fmt.Errorf("resource %d (%s): %w", i, res.Title, err))
		}
	}
	return errors.Join(errs...)
}

// validateLink accepts absolute http(s) URLs and relative paths to bundled
// assets.
func validateLink(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
		}
		return nil
	case "":
		return nil
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
