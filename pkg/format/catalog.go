package format

import "sync"

// Catalog is the ordered list of specs the recognizer tries. Earlier specs
// win when candidates overlap.
type Catalog struct {
	layout Layout
	specs  []*Spec
}

type layoutSpecs struct {
	full, clock24, date *Spec
}

var (
	compileOnce sync.Once
	byLayout    []layoutSpecs
	timeSpecs   []*Spec
)

func compile() {
	compileOnce.Do(func() {
		for _, l := range Layouts() {
			byLayout = append(byLayout, layoutSpecs{
				full:    newSpec(DateTime, l, true),
				clock24: newSpec(DateTime, l, false),
				date:    newSpec(Date, l, false),
			})
		}
		timeSpecs = []*Spec{
			newSpec(Time, DefaultLayout, true),
			newSpec(Time, DefaultLayout, false),
		}
	})
}

// Build returns the catalog for a preferred layout: the preferred layout's
// entries first, then every other layout in enumeration order, then the
// time-only entries.
func Build(preferred Layout) Catalog {
	compile()
	if !preferred.Valid() {
		preferred = DefaultLayout
	}
	order := []Layout{preferred}
	for _, l := range Layouts() {
		if l != preferred {
			order = append(order, l)
		}
	}

	specs := make([]*Spec, 0, 3*len(order)+len(timeSpecs))
	for _, l := range order {
		ls := byLayout[l]
		specs = append(specs, ls.full, ls.clock24, ls.date)
	}
	specs = append(specs, timeSpecs...)
	return Catalog{layout: preferred, specs: specs}
}

// Layout is the preferred layout the catalog was built for.
func (c Catalog) Layout() Layout { return c.layout }

// Specs returns the specs in priority order. The slice must not be modified.
func (c Catalog) Specs() []*Spec { return c.specs }

// Len is the number of specs.
func (c Catalog) Len() int { return len(c.specs) }

// Cache memoises the catalog for the current preferred layout.
type Cache struct {
	mu      sync.Mutex
	built   bool
	catalog Catalog
}

// Get returns the catalog for l, rebuilding it if the layout changed.
func (c *Cache) Get(l Layout) Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.built || c.catalog.layout != l {
		c.catalog = Build(l)
		c.built = true
	}
	return c.catalog
}
