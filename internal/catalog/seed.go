package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var seedDocument []byte

type document struct {
	Categories []Category `yaml:"categories"`
	Products   []Product  `yaml:"products"`
}

// Load decodes a catalog document. Unknown fields are rejected so typos in the data file
// surface at startup.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Products, doc.Categories)
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load(bytes.NewReader(seedDocument))
	})
	return defaultCatalog, defaultErr
}
