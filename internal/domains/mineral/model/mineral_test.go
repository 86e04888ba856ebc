package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMineral_TrimsEveryField(t *testing.T) {
	m := NewMineral(3, Fields{
		Name:          "  Quartz ",
		Formula:       "\tSiO2\n",
		Class:         " Oxides",
		Location:      " Ural, Brazil ",
		ValueCategory: "  ",
		ImageURL:      " images/quartz.png ",
	})

	assert.Equal(t, 3, m.ID)
	assert.Equal(t, "Quartz", m.Name)
	assert.Equal(t, "SiO2", m.Formula)
	assert.Equal(t, "Oxides", m.Class)
	assert.Equal(t, "Ural, Brazil", m.Location)
	assert.Equal(t, "", m.ValueCategory)
	assert.Equal(t, "images/quartz.png", m.ImageURL)
	assert.True(t, m.HasImage())
}

func TestText_NilBecomesEmpty(t *testing.T) {
	s := "  calcite "
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "calcite", Text(&s))
}

func TestWithID_KeepsFields(t *testing.T) {
	m := NewMineral(UnassignedID, Fields{Name: "Talc", Hardness: "1", InterestingFacts: "soft"})

	c := m.WithID(9)

	assert.Equal(t, 9, c.ID)
	assert.Equal(t, m.Fields, c.Fields)
	assert.Equal(t, UnassignedID, m.ID)
}

func TestEqual_UsesIdentityFieldsOnly(t *testing.T) {
	a := NewMineral(1, Fields{Name: "Pyrite", Formula: "FeS2", Class: "Sulfides", InterestingFacts: "fool's gold"})
	b := NewMineral(1, Fields{Name: "Pyrite", Formula: "FeS2", Class: "Sulfides", InterestingFacts: "something else"})

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	c := b.WithID(2)
	assert.False(t, a.Equal(c))

	d := NewMineral(1, Fields{Name: "Pyrite", Formula: "FeS2", Class: "Sulfides", ImageURL: "x.png"})
	assert.False(t, a.Equal(d))
	assert.NotEqual(t, a.Hash(), d.Hash())
}

func TestHash_FieldBoundaries(t *testing.T) {
	a := NewMineral(1, Fields{Name: "ab", Formula: "c"})
	b := NewMineral(1, Fields{Name: "a", Formula: "bc"})

	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestString_ShowsMissingImage(t *testing.T) {
	m := NewMineral(4, Fields{Name: "Galena"})

	s := m.String()

	require.Contains(t, s, "====== Galena (ID: 4) ======")
	assert.Contains(t, s, "Image: not set")
}

func TestSortHardness(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"7", 7},
		{"5-6", 5},
		{"6-5", 5},
		{"2,5", 2.5},
		{"2,5-3", 2.5},
		{" 6.5 ", 6.5},
		{"~5", 5},
		{"5 6", 5},
		{"about 3", 0},
		{"5-", 0},
		{"-", 0},
		{"-5", 0},
		{"5-6-7", 0},
		{"", 0},
		{"hard", 0},
		{"7 (Mohs)", 7},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, SortHardness(tt.in), 1e-9)
		})
	}
}

func TestStatsHardness(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"7", 7},
		{"5-6", 5},
		{"2,5", 2.5},
		{" 3 ", 3},
		{"~5", 0},
		{"5 6", 0},
		{"", 0},
		{"-5", 0},
		{"inf", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, StatsHardness(tt.in), 1e-9)
		})
	}
}

func TestCreateMineralReq_Validate(t *testing.T) {
	ok := CreateMineralReq{Name: "Quartz", MineralClass: "Oxides"}
	assert.NoError(t, ok.Validate())

	missing := CreateMineralReq{Name: "  ", MineralClass: ""}
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "mineral class is required")
}

func TestMapErrorToHTTP(t *testing.T) {
	status, _, code := MapErrorToHTTP(ErrMineralNotFound)
	assert.Equal(t, 404, status)
	assert.Equal(t, "MINERAL_NOT_FOUND", code)

	status, _, code = MapErrorToHTTP(NewInvalidExportFormat("pdf"))
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_EXPORT_FORMAT", code)

	status, _, _ = MapErrorToHTTP(ErrStorageUnavailable)
	assert.Equal(t, 503, status)

	status, _, code = MapErrorToHTTP(NewStorageError("save", assert.AnError))
	assert.Equal(t, 500, status)
	assert.Equal(t, "STORAGE_ERROR", code)
}
