package model

// Company is one configured (symbol, display name) pair. The list is
// read-only after startup.
type Company struct {
	Symbol string `yaml:"symbol" json:"symbol"`
	Name   string `yaml:"name" json:"name"`
}
