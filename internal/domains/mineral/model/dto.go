package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ============================================================
// REQUEST DTOs
// ============================================================

// CreateMineralReq is the form body of POST /add.
//
// VALIDATION RULES:
// - name: required
// - mineralClass: required
// - everything else: optional free text
type CreateMineralReq struct {
	Name                 string `form:"name"`
	Formula              string `form:"formula"`
	MineralClass         string `form:"mineralClass"`
	Color                string `form:"color"`
	StreakColor          string `form:"streakColor"`
	Luster               string `form:"luster"`
	Hardness             string `form:"hardness"`
	SpecificGravity      string `form:"specificGravity"`
	Cleavage             string `form:"cleavage"`
	Fracture             string `form:"fracture"`
	Genesis              string `form:"genesis"`
	Application          string `form:"application"`
	AdditionalProperties string `form:"additionalProperties"`
	InterestingFacts     string `form:"interestingFacts"`
	Location             string `form:"location"`
	ValueCategory        string `form:"valueCategory"`
	ImageURL             string `form:"imageUrl"`
}

// Validate checks required fields after trimming.
func (r CreateMineralReq) Validate() error {
	name := strings.TrimSpace(r.Name)
	class := strings.TrimSpace(r.MineralClass)
	return validation.Errors{
		"name":         validation.Validate(name, validation.Required.Error("name is required")),
		"mineralClass": validation.Validate(class, validation.Required.Error("mineral class is required")),
		"imageUrl":     validation.Validate(r.ImageURL, validation.Length(0, 2048)),
	}.Filter()
}

// ToFields maps the form onto entity fields.
func (r CreateMineralReq) ToFields() Fields {
	return Fields{
		Name:                 r.Name,
		Formula:              r.Formula,
		Class:                r.MineralClass,
		Color:                r.Color,
		StreakColor:          r.StreakColor,
		Luster:               r.Luster,
		Hardness:             r.Hardness,
		SpecificGravity:      r.SpecificGravity,
		Cleavage:             r.Cleavage,
		Fracture:             r.Fracture,
		Genesis:              r.Genesis,
		Application:          r.Application,
		AdditionalProperties: r.AdditionalProperties,
		InterestingFacts:     r.InterestingFacts,
		Location:             r.Location,
		ValueCategory:        r.ValueCategory,
		ImageURL:             r.ImageURL,
	}
}

// ============================================================
// RESPONSE DTOs
// ============================================================

// MineralResp is the reduced record exposed by the JSON list endpoints.
type MineralResp struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Formula     string `json:"formula"`
	Class       string `json:"class"`
	Color       string `json:"color"`
	Hardness    string `json:"hardness"`
	Location    string `json:"location"`
	Application string `json:"application"`
	ImageURL    string `json:"imageUrl"`
}

// MineralToResp maps an entity to its list representation.
func MineralToResp(m Mineral) MineralResp {
	return MineralResp{
		ID:          m.ID,
		Name:        m.Name,
		Formula:     m.Formula,
		Class:       m.Class,
		Color:       m.Color,
		Hardness:    m.Hardness,
		Location:    m.Location,
		Application: m.Application,
		ImageURL:    m.ImageURL,
	}
}

// MineralsToResp never returns nil so the JSON body is always an array.
func MineralsToResp(minerals []Mineral) []MineralResp {
	resps := make([]MineralResp, 0, len(minerals))
	for _, m := range minerals {
		resps = append(resps, MineralToResp(m))
	}
	return resps
}
