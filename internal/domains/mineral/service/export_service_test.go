package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"mineral-catalog/internal/domains/mineral/delimited"
	"mineral-catalog/internal/domains/mineral/model"
)

func fixedExporter() *exportService {
	return &exportService{now: func() time.Time {
		return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	}}
}

func sample() []model.Mineral {
	return []model.Mineral{
		model.NewMineral(1, model.Fields{Name: "Quartz", Formula: "SiO2", Class: "Oxides", Hardness: "7", Location: "Ural, Brazil"}),
		model.NewMineral(2, model.Fields{Name: "<Talc>", Class: "Silicates", Hardness: "1"}),
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := fixedExporter().Export("pdf", sample())

	require.Error(t, err)
	assert.True(t, model.IsInvalidExportFormat(err))
}

func TestExport_CSV(t *testing.T) {
	f, err := fixedExporter().Export(" CSV ", sample())

	require.NoError(t, err)
	assert.Equal(t, "minerals_20240301_103000.csv", f.Filename)
	assert.Contains(t, f.ContentType, "text/csv")

	lines := strings.Split(strings.TrimSpace(string(f.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Formula,Class,Color,Hardness,Location,Application", lines[0])
	assert.Equal(t, `Quartz,SiO2,Oxides,,7,"Ural, Brazil",`, lines[1])
}

func TestExport_Text(t *testing.T) {
	f, err := fixedExporter().Export(FormatText, sample())

	require.NoError(t, err)
	s := string(f.Content)
	assert.Contains(t, s, "Total: 2")
	assert.Contains(t, s, "Quartz (ID: 1)")
}

func TestExport_HTMLEscapes(t *testing.T) {
	f, err := fixedExporter().Export(FormatHTML, sample())

	require.NoError(t, err)
	s := string(f.Content)
	assert.Contains(t, s, "<h2>Quartz</h2>")
	assert.Contains(t, s, "&lt;Talc&gt;")
	assert.Contains(t, s, "Exported 2024-03-01 10:30")
}

func TestExport_DelimitedRoundTrip(t *testing.T) {
	f, err := fixedExporter().Export(FormatDelimited, sample())
	require.NoError(t, err)
	assert.Equal(t, "minerals_delimited_20240301_103000.txt", f.Filename)

	res, err := delimited.Read(bytes.NewReader(f.Content))
	require.NoError(t, err)
	require.Len(t, res.Minerals, 2)
	assert.Equal(t, sample()[0].Fields, res.Minerals[0].Fields)
}

func TestExport_XLSX(t *testing.T) {
	f, err := fixedExporter().Export(FormatXLSX, sample())
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(f.Content))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Quartz", rows[1][1])
	assert.Equal(t, xlsxHeader[len(xlsxHeader)-1], rows[0][len(xlsxHeader)-1])

	last, err := excelize.CoordinatesToCellName(len(xlsxHeader), 1)
	require.NoError(t, err)
	for _, cell := range []string{"A1", last} {
		styleID, err := book.GetCellStyle(xlsxSheet, cell)
		require.NoError(t, err)
		style, err := book.GetStyle(styleID)
		require.NoError(t, err)
		require.NotNil(t, style.Font, cell)
		assert.True(t, style.Font.Bold, cell)
	}
}

func TestFormats(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"html", "csv", "txt", "xlsx", "delimited"},
		NewExportService().Formats())
}
