// Package typetag derives identifier tags for field types.
//
// A tag is a bare Go identifier built from the canonical written type
// expression by replacing every symbol with a word and prefixing the fixed
// marker "Type":
//
//	string                  TypeString
//	[]string                TypeSliceOfString
//	[4]byte                 TypeArrayOfByteLen4
//	*time.Time              TypeRefTime_Time
//	map[string]int          TypeMapOfStringAndInt
//	Pair[int, string]       TypePairOfIntAndString
//	func(int) error         TypeFuncOfIntReturnsError
//
// The transform is lossy, so two distinct expressions can produce the same
// tag ("SliceOfInt" and "[]int"). DeriveAll refuses such a set.
package typetag
