package checkout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/masum-diu/nishaan/cart"
)

// ValidationError carries one message per offending request field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid order: " + strings.Join(parts, "; ")
}

// Shortage is one cart line that cannot be filled. Available is zero when the
// variant is gone or sold out.
type Shortage struct {
	cart.Key
	Requested int `json:"requested"`
	Available int `json:"available"`
}

// UnavailableError lists cart lines whose variant is gone or has less stock
// than the line asks for.
type UnavailableError struct {
	Lines []Shortage
}

func (e *UnavailableError) Error() string {
	parts := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		parts = append(parts, fmt.Sprintf("%d/%d (want %d, have %d)", l.ProductID, l.VariantID, l.Requested, l.Available))
	}
	return "items no longer available: " + strings.Join(parts, ", ")
}
