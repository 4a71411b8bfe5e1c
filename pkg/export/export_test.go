package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/predtrack/core/model"
)

func sample() []model.Prediction {
	return []model.Prediction{
		{ID: "P003", Text: "OpenBrain releases Agent-1", TimelineSegment: "Early 2026", Status: model.StatusConfirmedAccurate,
			AccuracyScore: model.Score(90), Categories: []string{"OpenBrain", "AI Models"}, LastEvaluated: "2026-03-01"},
		{ID: "P010", Text: "Unscored, \"quoted\"", TimelineSegment: "Mid 2025"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sample()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"P003", "Early 2026", "", "Confirmed Accurate", "90", "OpenBrain;AI Models", "2026-03-01", "OpenBrain releases Agent-1"}, rows[1])
	assert.Equal(t, "Pending", rows[2][3])
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, `Unscored, "quoted"`, rows[2][7])
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, sample()))
	out := buf.String()
	assert.Contains(t, out, "P003")
	assert.Contains(t, out, "March 1, 2026")
	assert.Contains(t, out, "Pending")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatTable, f)
	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
