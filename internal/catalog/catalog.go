package catalog

// Catalog is an immutable, ordered set of materials.
type Catalog struct {
	materials []Material
	index     map[string]int
	sources   []string
}

// New builds a catalog from materials in the given order. Materials are deep
// copied. Later entries with an ID already present are ignored.
func New(materials []Material, sources ...string) *Catalog {
	c := &Catalog{
		materials: make([]Material, 0, len(materials)),
		index:     make(map[string]int, len(materials)),
		sources:   append([]string(nil), sources...),
	}
	for _, m := range materials {
		if _, dup := c.index[m.ID]; dup {
			continue
		}
		c.index[m.ID] = len(c.materials)
		c.materials = append(c.materials, m.Clone())
	}
	return c
}

// Len returns the number of materials.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.materials)
}

// Materials returns a copy of the materials in catalog order.
func (c *Catalog) Materials() []Material {
	if c == nil {
		return nil
	}
	out := make([]Material, len(c.materials))
	for i, m := range c.materials {
		out[i] = m.Clone()
	}
	return out
}

// Get returns the material with the given ID.
func (c *Catalog) Get(id string) (Material, bool) {
	if c == nil {
		return Material{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Material{}, false
	}
	return c.materials[i].Clone(), true
}

// IDs returns material IDs in catalog order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, len(c.materials))
	for i, m := range c.materials {
		ids[i] = m.ID
	}
	return ids
}

// Sources lists where the catalog was loaded from.
func (c *Catalog) Sources() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.sources...)
}
