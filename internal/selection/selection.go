// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection applies the user's selection criterion to a scanned
// record set.
package selection

import (
	"fmt"

	"github.com/destruc7i0n/extract-mcstructure/internal/structid"
	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

// Status is the terminal state of a selection.
type Status string

const (
	// Selected means at least one record is ready to materialize.
	Selected Status = "selected"
	// NotFound means the explicit id is not among the scanned records.
	NotFound Status = "not_found"
	// Empty means "all" was requested but the store holds no records.
	Empty Status = "empty"
)

// Result is the outcome of Select.
type Result struct {
	Status Status

	// Records holds the selection in first-observed order.
	Records []types.Record

	// Available lists every scanned id when Status is NotFound.
	Available []string
}

// ParseCriterion turns user input into a Selection. "all" selects every
// record. Anything else is qualified with the default namespace when it has
// no colon and must then parse as a structure id.
func ParseCriterion(input string) (types.Selection, error) {
	if input == types.SelectAll {
		return types.Selection{All: true}, nil
	}
	id := structid.Qualify(input)
	if _, err := structid.Parse(id); err != nil {
		return types.Selection{}, fmt.Errorf("structure id %q: %w", input, err)
	}
	return types.Selection{ID: id}, nil
}

// Select filters records by sel. NotFound and Empty are soft outcomes and
// carry no records.
func Select(records *types.RecordSet, sel types.Selection) Result {
	if !sel.All {
		rec, ok := records.Get(sel.ID)
		if !ok {
			return Result{Status: NotFound, Available: records.IDs()}
		}
		return Result{Status: Selected, Records: []types.Record{rec}}
	}

	if records.Len() == 0 {
		return Result{Status: Empty}
	}
	return Result{Status: Selected, Records: records.Records()}
}
