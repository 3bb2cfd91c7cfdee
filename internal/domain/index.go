package domain

import (
	"fmt"
	"regexp"
)

// SymbolIndex groups placements by template name. Buckets keep enumeration
// order and are iterated in the order their names were first seen.
type SymbolIndex struct {
	names   []string
	buckets map[string][]Placement
	total   int
}

// BuildIndex groups placements by exact name. Nothing is filtered or merged.
func BuildIndex(placements []Placement) *SymbolIndex {
	idx := &SymbolIndex{buckets: make(map[string][]Placement)}
	for _, p := range placements {
		name := p.Name()
		if _, ok := idx.buckets[name]; !ok {
			idx.names = append(idx.names, name)
		}
		idx.buckets[name] = append(idx.buckets[name], p)
		idx.total++
	}
	return idx
}

// Lookup returns the bucket for name, or nil on a miss.
func (i *SymbolIndex) Lookup(name string) []Placement {
	if i == nil {
		return nil
	}
	return i.buckets[name]
}

// Search returns placements whose name fully matches re, in bucket order.
func (i *SymbolIndex) Search(re *regexp.Regexp) []Placement {
	if i == nil {
		return nil
	}
	anchored, err := CompileFullMatch(re.String())
	if err != nil {
		return nil
	}
	var result []Placement
	for _, name := range i.names {
		if anchored.MatchString(name) {
			result = append(result, i.buckets[name]...)
		}
	}
	return result
}

// SearchPattern compiles expr as a full-match pattern and runs Search.
func (i *SymbolIndex) SearchPattern(expr string) ([]Placement, error) {
	re, err := CompileFullMatch(expr)
	if err != nil {
		return nil, err
	}
	return i.Search(re), nil
}

// Names returns bucket names in iteration order.
func (i *SymbolIndex) Names() []string {
	if i == nil {
		return nil
	}
	out := make([]string, len(i.names))
	copy(out, i.names)
	return out
}

// Count returns the size of one bucket.
func (i *SymbolIndex) Count(name string) int {
	return len(i.Lookup(name))
}

// Len returns the number of indexed placements.
func (i *SymbolIndex) Len() int {
	if i == nil {
		return 0
	}
	return i.total
}

// All returns every placement in bucket order.
func (i *SymbolIndex) All() []Placement {
	if i == nil {
		return nil
	}
	result := make([]Placement, 0, i.total)
	for _, name := range i.names {
		result = append(result, i.buckets[name]...)
	}
	return result
}

// CompileFullMatch anchors expr at both ends before compiling it.
func CompileFullMatch(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid name pattern %q: %w", expr, err)
	}
	return re, nil
}
