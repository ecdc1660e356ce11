// Package preview embeds a small Kanto catalog so the guide can be browsed
// without a database (PREVIEW_MODE=true or --preview).
package preview

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/albapepper/pokestory-guide/internal/model"
	"github.com/albapepper/pokestory-guide/internal/store"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog decodes the embedded catalog.
func Catalog() (model.Catalog, error) {
	return Parse(catalogYAML)
}

// Parse decodes a catalog document. Unknown keys are rejected so typos in
// hand-edited catalogs surface immediately.
func Parse(data []byte) (model.Catalog, error) {
	var c model.Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return model.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return c, nil
}

// Store returns a validated in-memory store over the embedded catalog.
func Store() (*store.Memory, error) {
	c, err := Catalog()
	if err != nil {
		return nil, err
	}
	return store.NewMemory(c)
}
