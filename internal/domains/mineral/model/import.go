package model

// ========================================
// DELIMITED IMPORT RESULT
// ========================================

// ImportRowError describes one skipped row of an import file.
type ImportRowError struct {
	Row    int    `json:"row"`              // 1-based line number, header is row 1
	Fields int    `json:"fields,omitempty"` // number of fields found
	Error  string `json:"error"`
}

// ImportResult is returned by the delimited reader. Minerals carry
// UnassignedID until a collection assigns them.
type ImportResult struct {
	Minerals []Mineral       `json:"-"`
	Rows     int             `json:"total_rows"`
	Skipped  int             `json:"skipped_rows"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// ImportSummary is the response of POST /admin/import.
type ImportSummary struct {
	TotalRows    int              `json:"total_rows"`
	ImportedRows int              `json:"imported_rows"`
	SkippedRows  int              `json:"skipped_rows"`
	Errors       []ImportRowError `json:"errors,omitempty"`
	CreatedIDs   []int            `json:"created_ids,omitempty"`
}
