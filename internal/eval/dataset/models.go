package dataset

// Page is one labelled OCR text with the answers the pipeline should produce
type Page struct {
	ID          string `json:"id" yaml:"id" parquet:"id"`
	Text        string `json:"text" yaml:"text" parquet:"text"`
	COA         bool   `json:"coa" yaml:"coa" parquet:"coa"`
	SKU         string `json:"sku,omitempty" yaml:"sku,omitempty" parquet:"sku"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" parquet:"description"`
}

// document is the YAML layout: either a bare list or {pages: [...]}
type document struct {
	Pages []Page `yaml:"pages"`
}
