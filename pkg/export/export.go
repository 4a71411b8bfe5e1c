// Package export writes prediction lists in machine and human readable
// formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kilianp07/predtrack/core/model"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat validates a format name. Empty selects the table.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown format %q (table, json, csv)", s)
	}
}

// Write encodes preds to w in format f.
func Write(w io.Writer, f Format, preds []model.Prediction) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, preds)
	case FormatCSV:
		return WriteCSV(w, preds)
	default:
		return WriteTable(w, preds)
	}
}

// WriteJSON writes preds as an indented JSON array. A nil list is written
// as [].
func WriteJSON(w io.Writer, preds []model.Prediction) error {
	if preds == nil {
		preds = []model.Prediction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(preds)
}

var csvHeader = []string{"id", "timeline_segment", "predicted_date", "status", "accuracy_score", "categories", "last_evaluated", "text"}

// WriteCSV writes one row per prediction. Categories are joined with ";"
// and an absent score is an empty cell.
func WriteCSV(w io.Writer, preds []model.Prediction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range preds {
		if err := cw.Write([]string{
			p.ID,
			p.TimelineSegment,
			p.PredictedDate,
			string(model.EffectiveStatus(p)),
			scoreCell(p),
			strings.Join(p.Categories, ";"),
			p.LastEvaluated,
			p.Text,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTable renders preds as a bordered terminal table.
func WriteTable(w io.Writer, preds []model.Prediction) error {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "SEGMENT", "STATUS", "SCORE", "EVALUATED", "PREDICTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, p := range preds {
		score := scoreCell(p)
		if score == "" {
			score = "-"
		}
		t.Row(p.ID, p.TimelineSegment, string(model.EffectiveStatus(p)), score,
			model.FormatDate(p.LastEvaluated), truncate(p.Text, 60))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func scoreCell(p model.Prediction) string {
	s, ok := model.EffectiveScore(p)
	if !ok {
		return ""
	}
	return strconv.FormatFloat(s, 'f', -1, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
