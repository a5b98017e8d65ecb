// Package bins sits in a directory whose name is not the package name.
package bins

// Bin is a storage slot.
type Bin struct {
	Code string
}
