// Package filters builds meta query filters from user input. Edits stage
// into a pending set and only reach the committed set on Apply, so a half
// typed filter never hits the backend.
package filters

import (
	"fmt"
	"sync"

	"github.com/seasistemi/deliveryops/internal/wordpress"
)

// Type classifies a filter input widget.
type Type string

// The supported filter input types.
const (
	TypeText      Type = "text"
	TypeNumber    Type = "number"
	TypeSelect    Type = "select"
	TypeDate      Type = "date"
	TypeDateRange Type = "daterange"
)

// Option is one choice of a select filter.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Definition describes one filterable column.
type Definition struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Type    Type     `json:"type"`
	Options []Option `json:"options,omitempty"`
}

// compareAndType derives the meta compare operator and cast type for a
// filter input type.
func compareAndType(t Type) (compare, metaType string) {
	switch t {
	case TypeText:
		return "LIKE", "CHAR"
	case TypeNumber:
		return "=", "NUMERIC"
	case TypeDateRange:
		return "BETWEEN", "DATE"
	default:
		return "=", ""
	}
}

// RangeValue composes the meta value of a date range filter. Day bounds are
// expanded to full-day timestamps. A one-sided range keeps its separator so
// the backend still sees two comma-delimited slots.
func RangeValue(from, to string) string {
	var left, right string
	if from != "" {
		left = from + " 00:00:00"
	}
	if to != "" {
		right = to + " 23:59:59"
	}
	if left == "" && right == "" {
		return ""
	}
	return left + "," + right
}

// Pipeline holds the committed and pending filter state of one listing.
type Pipeline struct {
	mu          sync.Mutex
	definitions []Definition
	byKey       map[string]Definition
	committed   map[string]wordpress.Filter
	pending     map[string]wordpress.Filter
}

// NewPipeline constructs a Pipeline over the given filterable columns.
func NewPipeline(definitions []Definition) *Pipeline {
	byKey := make(map[string]Definition, len(definitions))
	for _, def := range definitions {
		byKey[def.Key] = def
	}
	return &Pipeline{
		definitions: definitions,
		byKey:       byKey,
		committed:   make(map[string]wordpress.Filter),
		pending:     make(map[string]wordpress.Filter),
	}
}

// Definitions returns the filterable columns in declaration order.
func (p *Pipeline) Definitions() []Definition {
	return p.definitions
}

// SetInput stages a value for a single-input filter. An empty value stages
// the filter's removal.
func (p *Pipeline) SetInput(key, value string) error {
	def, ok := p.byKey[key]
	if !ok {
		return fmt.Errorf("filters: unknown filter %q", key)
	}
	if def.Type == TypeDateRange {
		return fmt.Errorf("filters: %q takes a range, not a single value", key)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if value == "" {
		delete(p.pending, key)
		return nil
	}
	compare, metaType := compareAndType(def.Type)
	p.pending[key] = wordpress.Filter{Key: key, Value: value, Compare: compare, Type: metaType}
	return nil
}

// SetRange stages a value for a date range filter. Two empty bounds stage
// the filter's removal.
func (p *Pipeline) SetRange(key, from, to string) error {
	def, ok := p.byKey[key]
	if !ok {
		return fmt.Errorf("filters: unknown filter %q", key)
	}
	if def.Type != TypeDateRange {
		return fmt.Errorf("filters: %q does not take a range", key)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	value := RangeValue(from, to)
	if value == "" {
		delete(p.pending, key)
		return nil
	}
	compare, metaType := compareAndType(def.Type)
	p.pending[key] = wordpress.Filter{Key: key, Value: value, Compare: compare, Type: metaType}
	return nil
}

// Apply promotes the pending set to the committed set in one step.
func (p *Pipeline) Apply() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.committed = make(map[string]wordpress.Filter, len(p.pending))
	for key, f := range p.pending {
		p.committed[key] = f
	}
}

// Remove drops one filter from both sets immediately, without waiting for
// Apply.
func (p *Pipeline) Remove(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, key)
	delete(p.committed, key)
}

// RemoveAll clears both sets immediately.
func (p *Pipeline) RemoveAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = make(map[string]wordpress.Filter)
	p.committed = make(map[string]wordpress.Filter)
}

// Committed returns the active filters in column declaration order.
func (p *Pipeline) Committed() []wordpress.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ordered(p.committed)
}

// Pending returns the staged filters in column declaration order.
func (p *Pipeline) Pending() []wordpress.Filter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ordered(p.pending)
}

func (p *Pipeline) ordered(set map[string]wordpress.Filter) []wordpress.Filter {
	out := make([]wordpress.Filter, 0, len(set))
	for _, def := range p.definitions {
		if f, ok := set[def.Key]; ok {
			out = append(out, f)
		}
	}
	return out
}
