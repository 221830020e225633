package source

import (
	_ "embed"
	"time"

	"github.com/theirongolddev/iodda/internal/model"
)

//go:embed sample.toml
var sampleTOML []byte

// Sample returns the built-in demo budgets with fresh IDs.
func Sample() []model.Budget {
	budgets, err := Parse(FormatTOML, sampleTOML, time.Now())
	if err != nil {
		panic("source: embedded sample is invalid: " + err.Error())
	}
	return budgets
}
