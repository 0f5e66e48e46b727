package dashboard

import (
	"fmt"

	"repodash/analytics"
	"repodash/models"
)

// Title of the dashboard page.
const Title = "GitHub Repository Dashboard"

// NoDataWarning is shown when the dataset could not provide any rows.
const NoDataWarning = "No data available to display."

// State is the top-level state of the dashboard.
type State string

// Dashboard states
const (
	StateEmpty     State = "empty"
	StatePopulated State = "populated"
)

// Dashboard is everything the presentation layer needs for one selection.
type Dashboard struct {
	Title        string              `json:"title"`
	State        State               `json:"state"`
	Notice       string              `json:"notice,omitempty"`
	Warning      string              `json:"warning,omitempty"`
	Languages    []string            `json:"languages"`
	Selected     []string            `json:"selected"`
	Rows         int                 `json:"rows"`
	Capabilities models.Capabilities `json:"capabilities"`
	Panels       []Panel             `json:"panels"`
}

// Panel returns the panel with the given chart id.
func (d *Dashboard) Panel(id string) (Panel, bool) {
	for _, p := range d.Panels {
		if p.Spec.ID == id {
			return p, true
		}
	}
	return Panel{}, false
}

// Build filters ds by selected and derives the table of every chart the
// dataset schema supports. Charts whose capability is missing are left out
// without deriving anything. An empty dataset yields the empty state.
func Build(ds *models.Dataset, selected []string) (*Dashboard, error) {
	return BuildCharts(ds, selected, Catalog())
}

// BuildCharts is Build over an explicit chart list.
func BuildCharts(ds *models.Dataset, selected []string, charts []Chart) (*Dashboard, error) {
	d := &Dashboard{
		Title:     Title,
		Languages: []string{},
		Selected:  []string{},
		Panels:    []Panel{},
	}

	if ds.Empty() {
		d.State = StateEmpty
		d.Warning = NoDataWarning
		if ds != nil {
			d.Notice = ds.Notice
		}
		return d, nil
	}

	d.State = StatePopulated
	d.Languages = analytics.DistinctLanguages(ds)
	d.Selected = append(d.Selected, selected...)
	d.Capabilities = ds.Capabilities()

	view := analytics.Filter(ds, selected)
	d.Rows = view.Len()

	for _, c := range charts {
		if !d.Capabilities.Has(c.Requires) {
			continue
		}
		table, err := c.Derive(view)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", c.Spec.ID, err)
		}
		d.Panels = append(d.Panels, Panel{Spec: c.Spec, Table: table})
	}
	return d, nil
}
