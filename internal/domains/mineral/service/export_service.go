package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"mineral-catalog/internal/domains/mineral/delimited"
	"mineral-catalog/internal/domains/mineral/model"
)

const (
	FormatHTML      = "html"
	FormatCSV       = "csv"
	FormatText      = "txt"
	FormatXLSX      = "xlsx"
	FormatDelimited = "delimited"
)

// ExportFile is a rendered export ready to be sent as an attachment.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

type exportService struct {
	now func() time.Time
}

func NewExportService() ExportService {
	return &exportService{now: time.Now}
}

func (s *exportService) Formats() []string {
	return []string{FormatHTML, FormatCSV, FormatText, FormatXLSX, FormatDelimited}
}

func (s *exportService) Export(format string, minerals []model.Mineral) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))

	var (
		content     []byte
		contentType string
		ext         = format
		err         error
	)

	switch format {
	case FormatHTML:
		content, err = s.renderHTML(minerals)
		contentType = "text/html; charset=utf-8"
	case FormatCSV:
		content, err = renderCSV(minerals)
		contentType = "text/csv; charset=utf-8"
	case FormatText:
		content = renderText(minerals)
		contentType = "text/plain; charset=utf-8"
	case FormatXLSX:
		content, err = renderXLSX(minerals)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatDelimited:
		var buf bytes.Buffer
		err = delimited.Write(&buf, minerals)
		content = buf.Bytes()
		contentType = "text/plain; charset=utf-8"
		ext = "txt"
	default:
		return nil, model.NewInvalidExportFormat(format)
	}
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}

	name := "minerals"
	if format == FormatDelimited {
		name = "minerals_delimited"
	}

	return &ExportFile{
		Content:     content,
		ContentType: contentType,
		Filename:    fmt.Sprintf("%s_%s.%s", name, s.now().Format("20060102_150405"), ext),
	}, nil
}

// ========================================
// CSV (reduced subset, comma separated)
// ========================================

var csvHeader = []string{"Name", "Formula", "Class", "Color", "Hardness", "Location", "Application"}

func renderCSV(minerals []model.Mineral) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, m := range minerals {
		row := []string{m.Name, m.Formula, m.Class, m.Color, m.Hardness, m.Location, m.Application}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// ========================================
// TEXT
// ========================================

func renderText(minerals []model.Mineral) []byte {
	var b strings.Builder
	b.WriteString("MINERAL CATALOG\n")
	fmt.Fprintf(&b, "Total: %d\n\n", len(minerals))

	for _, m := range minerals {
		b.WriteString(m.String())
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// ========================================
// XLSX
// ========================================

const xlsxSheet = "Minerals"

var xlsxHeader = []string{
	"ID", "Name", "Formula", "Class", "Color", "Streak color", "Luster",
	"Hardness", "Specific gravity", "Cleavage", "Fracture", "Genesis",
	"Application", "Additional properties", "Interesting facts",
	"Location", "Value category", "Image",
}

func renderXLSX(minerals []model.Mineral) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	header := toInterfaces(xlsxHeader)
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write xlsx header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create xlsx header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(xlsxHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("style xlsx header: %w", err)
	}

	for i, m := range minerals {
		values := append([]interface{}{m.ID}, toInterfaces(delimited.Record(m))...)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// ========================================
// HTML
// ========================================

var exportPage = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Mineral catalog</title>
<style>
body { font-family: sans-serif; margin: 2em; }
.mineral { border: 1px solid #ccc; border-radius: 6px; padding: 1em; margin-bottom: 1em; }
.mineral h2 { margin-top: 0; }
dt { font-weight: bold; }
</style>
</head>
<body>
<h1>Mineral catalog</h1>
<p>Exported {{.Generated}}. Total: {{len .Minerals}}</p>
{{range .Minerals}}
<div class="mineral">
<h2>{{.Name}}</h2>
<dl>
<dt>Formula</dt><dd>{{.Formula}}</dd>
<dt>Class</dt><dd>{{.Class}}</dd>
<dt>Color</dt><dd>{{.Color}}</dd>
<dt>Streak color</dt><dd>{{.StreakColor}}</dd>
<dt>Luster</dt><dd>{{.Luster}}</dd>
<dt>Hardness</dt><dd>{{.Hardness}}</dd>
<dt>Specific gravity</dt><dd>{{.SpecificGravity}}</dd>
<dt>Cleavage</dt><dd>{{.Cleavage}}</dd>
<dt>Fracture</dt><dd>{{.Fracture}}</dd>
<dt>Genesis</dt><dd>{{.Genesis}}</dd>
<dt>Application</dt><dd>{{.Application}}</dd>
<dt>Additional properties</dt><dd>{{.AdditionalProperties}}</dd>
<dt>Interesting facts</dt><dd>{{.InterestingFacts}}</dd>
<dt>Location</dt><dd>{{.Location}}</dd>
<dt>Value category</dt><dd>{{.ValueCategory}}</dd>
</dl>
</div>
{{end}}
</body>
</html>
`))

func (s *exportService) renderHTML(minerals []model.Mineral) ([]byte, error) {
	var buf bytes.Buffer
	err := exportPage.Execute(&buf, struct {
		Generated string
		Minerals  []model.Mineral
	}{
		Generated: s.now().Format("2006-01-02 15:04"),
		Minerals:  minerals,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
