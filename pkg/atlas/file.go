package atlas

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/lungmap/pkg/metrics"
)

// catalogFile is the on-disk YAML shape of a catalog.
//
//	title: Interactive Lung Anatomy
//	regions:
//	  - name: Trachea
//	    description: The windpipe...
//	    learn_more_url: https://en.wikipedia.org/wiki/Trachea
//	    video_url: https://youtu.be/RiKIC5of8qM
//	    position: {left: 45, top: 5, width: 10, height: 40}
//	resources:
//	  - title: Research Paper
//	    url: Lungs_resarch_ppr.pdf
//	    kind: document
type catalogFile struct {
	Title     string     `yaml:"title"`
	Regions   []Region   `yaml:"regions"`
	Resources []Resource `yaml:"resources,omitempty"`
}

// LoadFile reads and validates a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	defer metrics.Timer(metrics.CatalogLoad)()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	cat, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// Decode parses a YAML catalog and validates it. Unknown fields are rejected.
func Decode(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	title := f.Title
	if title == "" {
		title = defaultCatalog.Title()
	}
	cat := New(title, f.Regions, f.Resources)
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Encode writes c in the format Decode reads.
func Encode(w io.Writer, c *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalogFile{
		Title:     c.Title(),
		Regions:   c.Regions(),
		Resources: c.Resources(),
	}); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return enc.Close()
}
