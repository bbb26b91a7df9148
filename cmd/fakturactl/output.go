package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/google/uuid"

	appinvoicing "github.com/faktura/backend/internal/application/invoicing"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// runResult is the outcome of one tenant's run
type runResult struct {
	TenantID uuid.UUID                        `json:"tenant_id"`
	Run      *appinvoicing.DunningRunResponse `json:"run,omitempty"`
	Error    string                           `json:"error,omitempty"`
}

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// newTable renders with right-aligned cells in the numeric columns
func newTable(numeric map[int]bool, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row != table.HeaderRow && numeric[col] {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkFormat(format string) error {
	if format != outputTable && format != outputJSON {
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

func writeRuns(w io.Writer, format string, results []runResult) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == outputJSON {
		return writeJSON(w, results)
	}
	t := newTable(map[int]bool{3: true, 4: true, 5: true, 6: true},
		"Tenant", "Run", "Status", "Geprüft", "Eskaliert", "Übersprungen", "Fehler")
	for _, r := range results {
		if r.Run == nil {
			t.Row(r.TenantID.String(), "-", "error: "+r.Error, "", "", "", "")
			continue
		}
		status := r.Run.Status
		if r.Run.Replayed {
			status += " (replayed)"
		}
		t.Row(
			r.TenantID.String(),
			r.Run.ID.String(),
			status,
			strconv.Itoa(r.Run.Evaluated),
			strconv.Itoa(r.Run.Escalated),
			strconv.Itoa(r.Run.Skipped),
			strconv.Itoa(r.Run.Failed),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func writeDecisions(w io.Writer, format string, decisions []appinvoicing.DunningDecisionResponse) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == outputJSON {
		return writeJSON(w, decisions)
	}
	if len(decisions) == 0 {
		_, err := fmt.Fprintln(w, "Keine überfälligen Rechnungen.")
		return err
	}
	t := newTable(map[int]bool{1: true, 4: true, 5: true},
		"Rechnung", "Tage", "Stufe", "Nächste Stufe", "Gebühr", "Zinsen", "Hinweis")
	for _, d := range decisions {
		next := "-"
		if d.Escalate {
			next = d.NextLevel
		}
		t.Row(
			d.InvoiceID.String(),
			strconv.Itoa(d.DaysOverdue),
			d.CurrentLevel,
			next,
			d.Fee.Add(d.FlatFee).StringFixed(2),
			d.Interest.StringFixed(2),
			d.Reason,
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
