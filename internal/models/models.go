package models

import "path/filepath"

// Kind is the classification of a scanned image
type Kind string

const (
	KindCOA  Kind = "COA"
	KindProp Kind = "PROP"
)

// ScannedItem represents one photograph's analysis result.
// Only the description may change after creation, and only through WithDescription.
type ScannedItem struct {
	Path string `json:"path" yaml:"path"`
	Text string `json:"text" yaml:"text"`
	Kind Kind   `json:"kind" yaml:"kind"`
	SKU  string `json:"sku,omitempty" yaml:"sku,omitempty"`
	Desc string `json:"description,omitempty" yaml:"description,omitempty"`
}

// IsCOA reports whether the item was classified as a certificate
func (s ScannedItem) IsCOA() bool {
	return s.Kind == KindCOA
}

// Stem returns the source file name without its extension
func (s ScannedItem) Stem() string {
	base := filepath.Base(s.Path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// WithDescription returns a copy of the item carrying a corrected description
func (s ScannedItem) WithDescription(desc string) ScannedItem {
	s.Desc = desc
	return s
}

// Group is an ordered, non-empty run of scanned items that belong to one lot
type Group []ScannedItem

// COAs returns the certificate items of the group in scan order
func (g Group) COAs() []ScannedItem {
	var coas []ScannedItem
	for _, item := range g {
		if item.IsCOA() {
			coas = append(coas, item)
		}
	}
	return coas
}

// Valid reports whether the group contains at least one certificate
func (g Group) Valid() bool {
	for _, item := range g {
		if item.IsCOA() {
			return true
		}
	}
	return false
}

// CorrectionMap maps a raw description to its canonical spelling
type CorrectionMap map[string]string

// CopyStatus describes what happened to a planned copy
type CopyStatus string

const (
	StatusPlanned   CopyStatus = "planned"
	StatusCopied    CopyStatus = "copied"
	StatusDiscarded CopyStatus = "discarded"
	StatusFailed    CopyStatus = "failed"
)

// CopyInstruction is one source file and the destination chosen for it
type CopyInstruction struct {
	Group       int        `json:"group" yaml:"group"`
	Source      string     `json:"source" yaml:"source"`
	Destination string     `json:"destination,omitempty" yaml:"destination,omitempty"`
	Kind        Kind       `json:"kind" yaml:"kind"`
	SKU         string     `json:"sku,omitempty" yaml:"sku,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status      CopyStatus `json:"status" yaml:"status"`
}
