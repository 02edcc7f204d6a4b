package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/xcore/sym"
)

// UnitSummary describes one written unit
type UnitSummary struct {
	Package     string   `json:"package"`
	Location    string   `json:"location"`
	Path        string   `json:"path,omitempty"`
	Settings    int      `json:"settings"`
	Classifiers []string `json:"classifiers,omitempty"` // glyph and name, in declaration order
	Imports     []string `json:"imports,omitempty"`
	Directives  []string `json:"directives,omitempty"`
}

// ExportSummary describes one export run
type ExportSummary struct {
	RunID      string        `json:"run_id"`
	Model      string        `json:"model"`
	OutputDir  string        `json:"output_dir,omitempty"`
	Units      []UnitSummary `json:"units"`
	Unresolved int           `json:"unresolved"`
	DurationMS int64         `json:"duration_ms"`
}

// TableData returns the summary as rows for a pterm table, header first
func (s *ExportSummary) TableData() pterm.TableData {
	data := pterm.TableData{{"Package", "File", "Settings", "Imports", "Directives"}}
	for _, u := range s.Units {
		data = append(data, []string{
			u.Package,
			u.Location,
			strconv.Itoa(u.Settings),
			strconv.Itoa(len(u.Imports)),
			strconv.Itoa(len(u.Directives)),
		})
	}
	return data
}

// RenderSummary writes the summary table and a closing status line to w
func RenderSummary(w io.Writer, s *ExportSummary) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(s.TableData()).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, table)

	status := pterm.Success.Sprintf("Exported %d unit(s) from %s in %dms", len(s.Units), s.Model, s.DurationMS)
	if s.Unresolved > 0 {
		status = pterm.Warning.Sprintf("Exported %d unit(s) from %s; %d reference(s) unresolved", len(s.Units), s.Model, s.Unresolved)
	}
	fmt.Fprint(w, status)
	return nil
}

// RenderUnitDetails writes the classifiers, imports and directives of every unit
func RenderUnitDetails(w io.Writer, s *ExportSummary) {
	for _, u := range s.Units {
		fmt.Fprintf(w, "%s %s\n", sym.Package, pterm.Bold.Sprint(u.Location))
		if len(u.Classifiers) > 0 {
			fmt.Fprintf(w, "  %s\n", strings.Join(u.Classifiers, "  "))
		}
		for _, qn := range u.Imports {
			fmt.Fprintf(w, "  import %s\n", qn)
		}
		for _, d := range u.Directives {
			fmt.Fprintf(w, "  %s%s\n", sym.Directive, d)
		}
	}
}
