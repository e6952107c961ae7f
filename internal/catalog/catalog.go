// Package catalog holds the static model registry: which provider
// serves each model, whether it accepts images, and its token ceiling.
package catalog

import (
	"errors"
	"fmt"

	"relaybot/internal/models"
)

// ErrModelNotFound is returned when an identifier resolves to no
// declared model.
var ErrModelNotFound = errors.New("model not found")

// Catalog is an immutable model registry. Construct it once at startup
// with New or Default and pass it by reference; it is safe for
// concurrent use.
type Catalog struct {
	byID    map[string]models.ModelDescriptor
	order   []string          // declaration order of model IDs
	aliases map[string]string // short name -> canonical ID
}

// New builds a catalog from an explicit descriptor list. Later
// duplicates overwrite earlier ones but keep the original position.
func New(descriptors []models.ModelDescriptor) *Catalog {
	c := &Catalog{
		byID:    make(map[string]models.ModelDescriptor, len(descriptors)),
		aliases: make(map[string]string),
	}
	for _, d := range descriptors {
		if _, exists := c.byID[d.ID]; !exists {
			c.order = append(c.order, d.ID)
		}
		c.byID[d.ID] = d
	}
	return c
}

// WithAliases returns the catalog with short-name aliases registered.
// Aliases pointing at unknown models are dropped.
func (c *Catalog) WithAliases(aliases map[string]string) *Catalog {
	for short, id := range aliases {
		if _, ok := c.byID[id]; ok {
			c.aliases[short] = id
		}
	}
	return c
}

// Resolve maps a model identifier (or registered alias) to its
// descriptor. Every identifier referenced anywhere in the system must
// resolve here or the operation fails.
func (c *Catalog) Resolve(modelID string) (models.ModelDescriptor, error) {
	if d, ok := c.byID[modelID]; ok {
		return d, nil
	}
	if id, ok := c.aliases[modelID]; ok {
		return c.byID[id], nil
	}
	return models.ModelDescriptor{}, fmt.Errorf("%w: %s", ErrModelNotFound, modelID)
}

// ListByProvider returns the descriptors for one provider in
// declaration order.
func (c *Catalog) ListByProvider(provider string) []models.ModelDescriptor {
	var out []models.ModelDescriptor
	for _, id := range c.order {
		if d := c.byID[id]; d.Provider == provider {
			out = append(out, d)
		}
	}
	return out
}

// Providers returns the distinct provider names, in first-appearance
// order.
func (c *Catalog) Providers() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range c.order {
		p := c.byID[id].Provider
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// IsMultimodal reports whether the model accepts image input. Unknown
// identifiers return false rather than an error; callers needing strict
// validation must Resolve first.
func (c *Catalog) IsMultimodal(modelID string) bool {
	d, err := c.Resolve(modelID)
	if err != nil {
		return false
	}
	return d.Multimodal
}

// All returns every descriptor in declaration order.
func (c *Catalog) All() []models.ModelDescriptor {
	out := make([]models.ModelDescriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of declared models.
func (c *Catalog) Len() int {
	return len(c.order)
}
