// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records shared across docmath packages.
package types

// EquationForm distinguishes cleaned plain text from raw serialized markup.
type EquationForm string

const (
	// FormClean is equation content with markup tags stripped and
	// whitespace runs collapsed to single spaces.
	FormClean EquationForm = "clean"

	// FormRaw is equation content as verbatim serialized XML, tags included.
	FormRaw EquationForm = "raw"
)

// Equation is one extracted equation from a document.
type Equation struct {
	// Index is the 1-based position in the deduplicated result sequence.
	Index int `json:"index" yaml:"index"`

	// Content is the equation text in the extraction's form.
	Content string `json:"content" yaml:"content"`
}

// Extraction holds the result of scanning one document.
type Extraction struct {
	// Source is the path of the scanned document.
	Source string `json:"source" yaml:"source"`

	// Form records whether Equations carry cleaned text or raw markup.
	Form EquationForm `json:"form" yaml:"form"`

	// Equations lists the extracted equations, blank entries dropped and
	// duplicates removed, in order of first occurrence.
	Equations []Equation `json:"equations" yaml:"equations"`
}

// Count returns the number of extracted equations.
func (e Extraction) Count() int {
	return len(e.Equations)
}
