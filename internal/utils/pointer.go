package utils

// Ptr returns a pointer to the given value. Convenience for populating
// optional wire fields that distinguish "absent" from "zero".
func Ptr[T any](v T) *T {
	return &v
}
