// Package delimited reads and writes the semicolon-separated catalog file:
// one header line followed by one row of 17 fields per mineral.
package delimited

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"mineral-catalog/internal/domains/mineral/model"
)

const (
	Separator = ';'

	// FieldCount is the number of columns of a current file.
	FieldCount = 17
	// LegacyFieldCount is the older layout without the image column.
	LegacyFieldCount = 16
)

// Header is written as the first line of every exported file.
var Header = []string{
	"Name", "Formula", "Class", "Color", "Streak color", "Luster",
	"Hardness", "Specific gravity", "Cleavage", "Fracture", "Genesis",
	"Application", "Additional properties", "Interesting facts",
	"Location", "Value category", "Image",
}

// ========================================
// READ
// ========================================

// Read parses r. The first line is skipped as a header. Rows that cannot be
// mapped to a mineral are logged, counted and reported in the result; they
// never abort the import.
func Read(r io.Reader) (*model.ImportResult, error) {
	cr := csv.NewReader(r)
	cr.Comma = Separator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	result := &model.ImportResult{
		Minerals: []model.Mineral{},
	}

	headerSeen := false
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return result, fmt.Errorf("read delimited file: %w", err)
			}
			if !headerSeen {
				headerSeen = true
				continue
			}
			result.Rows++
			skip(result, perr.StartLine, len(record), perr.Err.Error())
			continue
		}

		if !headerSeen {
			headerSeen = true
			continue
		}
		result.Rows++

		line, _ := cr.FieldPos(0)
		m, ok := toMineral(record)
		if !ok {
			skip(result, line, len(record), fmt.Sprintf("expected %d or %d fields", FieldCount, LegacyFieldCount))
			continue
		}
		result.Minerals = append(result.Minerals, m)
	}

	return result, nil
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) (*model.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

func skip(result *model.ImportResult, row, fields int, reason string) {
	log.Warn().
		Int("row", row).
		Int("fields", fields).
		Str("reason", reason).
		Msg("Skipping delimited row")

	result.Skipped++
	result.Errors = append(result.Errors, model.ImportRowError{
		Row:    row,
		Fields: fields,
		Error:  reason,
	})
}

// toMineral maps 17 or more fields to a full record and 16 fields to a
// record without image. Extra trailing fields are ignored.
func toMineral(f []string) (model.Mineral, bool) {
	if len(f) < LegacyFieldCount {
		return model.Mineral{}, false
	}

	image := ""
	if len(f) >= FieldCount {
		image = f[16]
	}

	return model.NewMineral(model.UnassignedID, model.Fields{
		Name:                 f[0],
		Formula:              f[1],
		Class:                f[2],
		Color:                f[3],
		StreakColor:          f[4],
		Luster:               f[5],
		Hardness:             f[6],
		SpecificGravity:      f[7],
		Cleavage:             f[8],
		Fracture:             f[9],
		Genesis:              f[10],
		Application:          f[11],
		AdditionalProperties: f[12],
		InterestingFacts:     f[13],
		Location:             f[14],
		ValueCategory:        f[15],
		ImageURL:             image,
	}), true
}

// ========================================
// WRITE
// ========================================

// Write emits the header and one row per mineral. Fields containing the
// separator, quotes or line breaks are quoted.
func Write(w io.Writer, minerals []model.Mineral) error {
	cw := csv.NewWriter(w)
	cw.Comma = Separator

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, m := range minerals {
		if err := cw.Write(Record(m)); err != nil {
			return fmt.Errorf("write mineral %d: %w", m.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile creates or truncates path and writes minerals into it.
func WriteFile(path string, minerals []model.Mineral) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := Write(f, minerals); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Record returns the 17 columns of m in file order.
func Record(m model.Mineral) []string {
	return []string{
		m.Name, m.Formula, m.Class, m.Color, m.StreakColor, m.Luster,
		m.Hardness, m.SpecificGravity, m.Cleavage, m.Fracture, m.Genesis,
		m.Application, m.AdditionalProperties, m.InterestingFacts,
		m.Location, m.ValueCategory, m.ImageURL,
	}
}
