// Package dashboard pairs chart specifications with the derived tables they
// display and assembles the dashboard for a language selection.
package dashboard

// Kind is the visual form of a chart.
type Kind string

// Chart kinds
const (
	KindBar       Kind = "bar"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindBox       Kind = "box"
	KindHeatmap   Kind = "heatmap"
	KindArea      Kind = "area"
	KindPie       Kind = "pie"
	KindLine      Kind = "line"
)

// Orientation of bar charts
const (
	Vertical   = "v"
	Horizontal = "h"
)

// Spec describes how a derived table maps onto a chart. Column fields name
// columns of the derived table; empty fields are unused by the kind.
type Spec struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Subtitle string `json:"subtitle"`
	Title    string `json:"title,omitempty"`

	X      string `json:"x,omitempty"`
	Y      string `json:"y,omitempty"`
	Color  string `json:"color,omitempty"`
	Names  string `json:"names,omitempty"`
	Values string `json:"values,omitempty"`

	Labels      map[string]string `json:"labels,omitempty"`
	Orientation string            `json:"orientation,omitempty"`
	Bins        int               `json:"bins,omitempty"`
	Markers     bool              `json:"markers,omitempty"`
	ColorScale  string            `json:"color_scale,omitempty"`
}

// Label returns the human-readable label for column, falling back to the
// column name itself.
func (s Spec) Label(column string) string {
	if l, ok := s.Labels[column]; ok {
		return l
	}
	return column
}

// Table is a derived table ready for presentation.
type Table interface {
	Len() int
}

// Panel is one chart request: a spec and the table it draws.
type Panel struct {
	Spec  Spec  `json:"spec"`
	Table Table `json:"table"`
}

// Empty reports whether the panel has nothing to draw.
func (p Panel) Empty() bool {
	return p.Table == nil || p.Table.Len() == 0
}
