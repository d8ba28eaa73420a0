package model

// Insurer a company competing for a coverage line
type Insurer struct {
	ID    string
	Name  string
	Image string
}

// DefaultInsurers built-in catalog used when the game config does not list insurers.
var DefaultInsurers = []Insurer{
	{ID: "if", Name: "If", Image: "public/if_logo.png"},
	{ID: "op", Name: "OP", Image: "public/OP_logo.png"},
	{ID: "fennia", Name: "Fennia", Image: "public/fennia_logo.png"},
	{ID: "lahitapiola", Name: "LähiTapiola", Image: "public/lahitapiola_logo.png"},
	{ID: "pop", Name: "POP Vakuutus", Image: "public/POP_Vakuutus_logo.png"},
	{ID: "pohjantahti", Name: "Pohjantähti", Image: "public/pohjantahti_logo.png"},
}

// Catalog is the ordered, read-only set of insurers drawn from.
// The zero value is an empty catalog.
type Catalog struct {
	insurers []Insurer
}

// NewCatalog copies insurers into an immutable catalog.
// Empty lists, blank ids and duplicate ids are rejected.
func NewCatalog(insurers []Insurer) (Catalog, error) {
	if len(insurers) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}

	seen := make(map[string]struct{}, len(insurers))
	items := make([]Insurer, len(insurers))
	for i, ins := range insurers {
		if ins.ID == "" {
			return Catalog{}, &CatalogError{Index: i, Reason: "empty id"}
		}
		if _, ok := seen[ins.ID]; ok {
			return Catalog{}, &CatalogError{Index: i, Reason: "duplicate id " + ins.ID}
		}
		seen[ins.ID] = struct{}{}
		items[i] = ins
	}

	return Catalog{insurers: items}, nil
}

// DefaultCatalog returns the built-in six insurers.
func DefaultCatalog() Catalog {
	c, _ := NewCatalog(DefaultInsurers)
	return c
}

func (c Catalog) Len() int {
	return len(c.insurers)
}

// At panics on an out of range index, like a slice.
func (c Catalog) At(i int) Insurer {
	return c.insurers[i]
}

// All returns a copy of the insurers in catalog order.
func (c Catalog) All() []Insurer {
	out := make([]Insurer, len(c.insurers))
	copy(out, c.insurers)
	return out
}

func (c Catalog) ByID(id string) (Insurer, bool) {
	for _, ins := range c.insurers {
		if ins.ID == id {
			return ins, true
		}
	}
	return Insurer{}, false
}
