package gen

import (
	"field-accessor/internal/schema"
)

// swapData is one ordered entry of the swap table.
type swapData struct {
	A, B fieldData
}

// buildSwaps lists every ordered pair of distinct same-typed fields. Both
// orderings are present; self pairs never are.
func buildSwaps(s *schema.Schema, fields []fieldData) []swapData {
	pairs := s.SwapPairs()
	out := make([]swapData, len(pairs))

	for i, p := range pairs {
		out[i] = swapData{A: fields[p.A.Index], B: fields[p.B.Index]}
	}

	return out
}
