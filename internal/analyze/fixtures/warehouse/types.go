// Package warehouse is a second loader fixture with an aliased import.
package warehouse

import (
	stdtime "time"

	"field-accessor/internal/analyze/fixtures/go-bins"
)

// Shelf holds stock positions.
//
//fieldaccessor:generate
type Shelf struct {
	Row, Column int
	Label       string
	Checked     stdtime.Time
	Counts      map[string]int
	Bin         bins.Bin
	Size        struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	Origin struct{ Width, Height int }
}
