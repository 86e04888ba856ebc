package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// UnassignedID marks a record that has not been added to a collection yet.
const UnassignedID = -1

// ========================================
// FIELDS (descriptive text of a specimen)
// ========================================

// Fields holds every descriptive attribute of a mineral specimen.
// All values are free text; Hardness may encode a range ("5-6") or use a
// decimal comma ("2,5").
type Fields struct {
	Name                 string `json:"name"`
	Formula              string `json:"formula"`
	Class                string `json:"class"`
	Color                string `json:"color"`
	StreakColor          string `json:"streakColor"`
	Luster               string `json:"luster"`
	Hardness             string `json:"hardness"`
	SpecificGravity      string `json:"specificGravity"`
	Cleavage             string `json:"cleavage"`
	Fracture             string `json:"fracture"`
	Genesis              string `json:"genesis"`
	Application          string `json:"application"`
	AdditionalProperties string `json:"additionalProperties"`
	InterestingFacts     string `json:"interestingFacts"`
	Location             string `json:"location"`
	ValueCategory        string `json:"valueCategory"`
	ImageURL             string `json:"imageUrl"`
}

// Normalize returns a copy with every field trimmed.
func (f Fields) Normalize() Fields {
	return Fields{
		Name:                 strings.TrimSpace(f.Name),
		Formula:              strings.TrimSpace(f.Formula),
		Class:                strings.TrimSpace(f.Class),
		Color:                strings.TrimSpace(f.Color),
		StreakColor:          strings.TrimSpace(f.StreakColor),
		Luster:               strings.TrimSpace(f.Luster),
		Hardness:             strings.TrimSpace(f.Hardness),
		SpecificGravity:      strings.TrimSpace(f.SpecificGravity),
		Cleavage:             strings.TrimSpace(f.Cleavage),
		Fracture:             strings.TrimSpace(f.Fracture),
		Genesis:              strings.TrimSpace(f.Genesis),
		Application:          strings.TrimSpace(f.Application),
		AdditionalProperties: strings.TrimSpace(f.AdditionalProperties),
		InterestingFacts:     strings.TrimSpace(f.InterestingFacts),
		Location:             strings.TrimSpace(f.Location),
		ValueCategory:        strings.TrimSpace(f.ValueCategory),
		ImageURL:             strings.TrimSpace(f.ImageURL),
	}
}

// Text converts an optional input into a normalized value: nil becomes "".
func Text(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// ========================================
// MINERAL ENTITY
// ========================================

// Mineral is one catalog entry. Treat it as a value: the collection hands
// out copies, and the only way to change a record is to build a new one
// through NewMineral.
type Mineral struct {
	ID int `json:"id"`
	Fields
}

// NewMineral is the single factory for records. Every field is normalized
// here so all call sites get the same guarantees.
func NewMineral(id int, f Fields) Mineral {
	return Mineral{
		ID:     id,
		Fields: f.Normalize(),
	}
}

// WithID returns a copy of m under a new identifier.
func (m Mineral) WithID(id int) Mineral {
	return NewMineral(id, m.Fields)
}

// HasImage reports whether an image reference is set.
func (m Mineral) HasImage() bool {
	return m.ImageURL != ""
}

// Equal compares identity fields only: ID, Name, Formula, Class and
// ImageURL. Decorative fields such as InterestingFacts are ignored.
func (m Mineral) Equal(other Mineral) bool {
	return m.ID == other.ID &&
		m.Name == other.Name &&
		m.Formula == other.Formula &&
		m.Class == other.Class &&
		m.ImageURL == other.ImageURL
}

// Hash is consistent with Equal.
func (m Mineral) Hash() uint64 {
	d := xxhash.New()
	// 0x1f separates fields so ("ab","c") and ("a","bc") hash differently
	_, _ = d.WriteString(strconv.Itoa(m.ID))
	for _, s := range []string{m.Name, m.Formula, m.Class, m.ImageURL} {
		_, _ = d.WriteString("\x1f")
		_, _ = d.WriteString(s)
	}
	return d.Sum64()
}

// String renders the record as a multi-line text block.
func (m Mineral) String() string {
	image := m.ImageURL
	if image == "" {
		image = "not set"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "====== %s (ID: %d) ======\n", m.Name, m.ID)
	fmt.Fprintf(&b, "Formula: %s\n", m.Formula)
	fmt.Fprintf(&b, "Class: %s\n", m.Class)
	fmt.Fprintf(&b, "Color: %s\n", m.Color)
	fmt.Fprintf(&b, "Streak color: %s\n", m.StreakColor)
	fmt.Fprintf(&b, "Luster: %s\n", m.Luster)
	fmt.Fprintf(&b, "Hardness: %s\n", m.Hardness)
	fmt.Fprintf(&b, "Specific gravity: %s\n", m.SpecificGravity)
	fmt.Fprintf(&b, "Cleavage: %s\n", m.Cleavage)
	fmt.Fprintf(&b, "Fracture: %s\n", m.Fracture)
	fmt.Fprintf(&b, "Genesis: %s\n", m.Genesis)
	fmt.Fprintf(&b, "Application: %s\n", m.Application)
	fmt.Fprintf(&b, "Additional properties: %s\n", m.AdditionalProperties)
	fmt.Fprintf(&b, "Interesting facts: %s\n", m.InterestingFacts)
	fmt.Fprintf(&b, "Location: %s\n", m.Location)
	fmt.Fprintf(&b, "Value category: %s\n", m.ValueCategory)
	fmt.Fprintf(&b, "Image: %s\n", image)
	b.WriteString("===========================\n")
	return b.String()
}
