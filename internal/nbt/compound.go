package nbt

import "github.com/meshbound/blockproto/internal/hash"

type property struct {
	name string
	tag  Tag
}

// Compound is an ordered, name-unique map from property name to Tag. On
// repeated Set calls for the same name the latest value wins in place,
// preserving first-insertion order so re-encoding a document built or
// decoded by this package is reproducible (spec.md 3.1, 8.1 "canonical key
// order").
//
// Lookup is backed by an xxHash64 index keyed on the property name rather
// than a map[string]Tag directly, so repeated Get calls against the same
// borrowed string never force Go's map implementation to rehash the raw
// bytes of the name itself; only first-time inserts pay for an owned copy
// of the key in props.
type Compound struct {
	name  string
	props []property
	index map[uint64][]int
}

// NewCompound creates an empty compound with the given name. Root
// documents carry a name read from the wire; nested or list-element
// compounds are always named "".
func NewCompound(name string) *Compound {
	return &Compound{name: name, index: make(map[uint64][]int)}
}

// Name returns the compound's name.
func (c *Compound) Name() string { return c.name }

// Len returns the number of properties.
func (c *Compound) Len() int { return len(c.props) }

func (c *Compound) find(name string) int {
	h := hash.ID(name)
	for _, i := range c.index[h] {
		if c.props[i].name == name {
			return i
		}
	}
	return -1
}

// Set inserts or overwrites a property. Per spec.md 3.1, the latest value
// for a repeated name wins; the property keeps its original position.
func (c *Compound) Set(name string, tag Tag) {
	if i := c.find(name); i >= 0 {
		c.props[i].tag = tag
		return
	}
	c.props = append(c.props, property{name: name, tag: tag})
	h := hash.ID(name)
	c.index[h] = append(c.index[h], len(c.props)-1)
}

// Get looks up a property by name.
func (c *Compound) Get(name string) (Tag, bool) {
	if i := c.find(name); i >= 0 {
		return c.props[i].tag, true
	}
	return Tag{}, false
}

// Delete removes a property if present.
func (c *Compound) Delete(name string) {
	i := c.find(name)
	if i < 0 {
		return
	}
	c.props = append(c.props[:i], c.props[i+1:]...)
	c.rebuildIndex()
}

func (c *Compound) rebuildIndex() {
	c.index = make(map[uint64][]int, len(c.props))
	for i, p := range c.props {
		h := hash.ID(p.name)
		c.index[h] = append(c.index[h], i)
	}
}

// Range visits properties in insertion order. It stops early if fn returns
// false.
func (c *Compound) Range(fn func(name string, tag Tag) bool) {
	for _, p := range c.props {
		if !fn(p.name, p.tag) {
			return
		}
	}
}

// Equal reports whether c and other have the same key set with
// per-value-equal payloads, per spec.md 8.1's round-trip invariant
// ("equal up to key-set equality and per-value equality"). Nested
// compounds and lists are compared structurally.
func (c *Compound) Equal(other *Compound) bool {
	if c.Len() != other.Len() {
		return false
	}
	ok := true
	c.Range(func(name string, tag Tag) bool {
		ot, present := other.Get(name)
		if !present || !tagEqual(tag, ot) {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func tagEqual(a, b Tag) bool {
	if a.id != b.id {
		return false
	}
	switch a.id {
	case TagCompound:
		ac, _ := a.AsCompound()
		bc, _ := b.AsCompound()
		return ac.Equal(bc)
	case TagList:
		al, _ := a.AsList()
		bl, _ := b.AsList()
		if al.Elem() != bl.Elem() || al.Len() != bl.Len() {
			return false
		}
		for i := range al.items {
			if !tagEqual(al.items[i], bl.items[i]) {
				return false
			}
		}
		return true
	case TagByteArray:
		av, _ := a.AsByteArray()
		bv, _ := b.AsByteArray()
		return int8SliceEqual(av, bv)
	case TagIntArray:
		av, _ := a.AsIntArray()
		bv, _ := b.AsIntArray()
		return int32SliceEqual(av, bv)
	case TagLongArray:
		av, _ := a.AsLongArray()
		bv, _ := b.AsLongArray()
		return int64SliceEqual(av, bv)
	default:
		return a.data == b.data
	}
}

func int8SliceEqual(a, b []int8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func int32SliceEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func int64SliceEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
