package delimited

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineral-catalog/internal/domains/mineral/model"
)

const header = "Name;Formula;Class;Color;Streak;Luster;Hardness;SG;Cleavage;Fracture;Genesis;Application;Extra;Facts;Location;Category;Image\n"

func TestRead_FullAndLegacyRows(t *testing.T) {
	in := header +
		"Quartz;SiO2;Oxides;Colorless;White;Glassy;7;2.65;None;Conchoidal;Magmatic;Optics;Piezo;Common; Ural, Brazil ;Semi-precious;quartz.png\n" +
		"Talc;Mg3Si4O10(OH)2;Silicates;White;White;Pearly;1;2.7;Perfect;Uneven;Metamorphic;Cosmetics;Soft;Softest;Austria;Industrial\n"

	res, err := Read(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Zero(t, res.Skipped)
	require.Len(t, res.Minerals, 2)

	q := res.Minerals[0]
	assert.Equal(t, model.UnassignedID, q.ID)
	assert.Equal(t, "Quartz", q.Name)
	assert.Equal(t, "Ural, Brazil", q.Location)
	assert.Equal(t, "quartz.png", q.ImageURL)

	talc := res.Minerals[1]
	assert.Equal(t, "Industrial", talc.ValueCategory)
	assert.Equal(t, "", talc.ImageURL)
}

func TestRead_SkipsShortRowsAndContinues(t *testing.T) {
	in := header +
		"Broken;row;with;few;fields\n" +
		"Galena;PbS;Sulfides;Gray;Gray;Metallic;2,5;7.5;Cubic;Subconchoidal;Hydrothermal;Lead ore;Heavy;Cubes;Missouri;Ore;\n"

	res, err := Read(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 2, res.Errors[0].Row)
	assert.Equal(t, 5, res.Errors[0].Fields)
	require.Len(t, res.Minerals, 1)
	assert.Equal(t, "Galena", res.Minerals[0].Name)
}

func TestRead_ExtraFieldsIgnored(t *testing.T) {
	in := header + strings.Repeat("x;", 18) + "x\n"

	res, err := Read(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, res.Minerals, 1)
	assert.Equal(t, "x", res.Minerals[0].ImageURL)
}

func TestRead_HeaderOnly(t *testing.T) {
	res, err := Read(strings.NewReader(header))

	require.NoError(t, err)
	assert.Zero(t, res.Rows)
	assert.Empty(t, res.Minerals)
}

func TestWriteThenRead_RoundTrip(t *testing.T) {
	in := []model.Mineral{
		model.NewMineral(1, model.Fields{
			Name:             "Quartz",
			Formula:          "SiO2",
			Class:            "Oxides",
			Hardness:         "7",
			InterestingFacts: `Called "rock crystal"; very common`,
			Location:         "Ural, Brazil",
			ImageURL:         "quartz.png",
		}),
		model.NewMineral(2, model.Fields{
			Name:        "Talc",
			Hardness:    "1",
			Application: "Line one\nline two",
		}),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, in))

	res, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, res.Minerals, len(in))
	for i := range in {
		assert.Equal(t, in[i].Fields, res.Minerals[i].Fields)
	}
}

func TestWriteFile_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minerals.txt")
	in := []model.Mineral{model.NewMineral(5, model.Fields{Name: "Pyrite", Class: "Sulfides"})}

	require.NoError(t, WriteFile(path, in))
	res, err := ReadFile(path)

	require.NoError(t, err)
	require.Len(t, res.Minerals, 1)
	assert.Equal(t, "Pyrite", res.Minerals[0].Name)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestRecord_Order(t *testing.T) {
	r := Record(model.NewMineral(1, model.Fields{Name: "n", ValueCategory: "v", ImageURL: "i"}))

	require.Len(t, r, FieldCount)
	assert.Equal(t, "n", r[0])
	assert.Equal(t, "v", r[15])
	assert.Equal(t, "i", r[16])
}
