package models

// KeyCount is one entry of a top-K query.
type KeyCount struct {
	Key   string `yaml:"key" json:"key"`
	Count int    `yaml:"count" json:"count"`
}

// Report summarizes one count run for output and persistence.
type Report struct {
	Input      string     `yaml:"input" json:"input"`
	Field      string     `yaml:"field,omitempty" json:"field,omitempty"`
	Extractor  string     `yaml:"extractor" json:"extractor"`
	Policy     string     `yaml:"policy" json:"policy"`
	Workers    int        `yaml:"workers" json:"workers"`
	Processed  int        `yaml:"processed" json:"processed"`
	Malformed  int        `yaml:"malformed" json:"malformed"`
	Distinct   int        `yaml:"distinct" json:"distinct"`
	DurationMS int64      `yaml:"duration_ms" json:"duration_ms"`
	Top        []KeyCount `yaml:"top" json:"top"`
}
