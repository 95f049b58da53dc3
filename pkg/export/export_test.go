package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Enrollments",
		Headers: []string{"Course", "Student", "Status"},
		Rows: []map[string]string{
			{"Course": "Web Development", "Student": "Ayesha Khan", "Status": "approved"},
			{"Course": "Amazon", "Student": "Bilal Ahmed", "Status": "pending"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	content, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Course", "Student", "Status"}, records[0])
	assert.Equal(t, "Ayesha Khan", records[1][1])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestCSVExporterMissingCellsStayEmpty(t *testing.T) {
	content, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"A", "B"},
		Rows:    []map[string]string{{"A": "only-a"}},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"only-a", ""}, records[1])
}

func TestPDFExporterRender(t *testing.T) {
	content, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{Title: "empty"})
	assert.Error(t, err)
}
