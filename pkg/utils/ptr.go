package utils

// DiffPtr сообщает, отличаются ли значения за указателями
// (nil и не-nil считаются разными значениями).
func DiffPtr[T comparable](oldVal, newVal *T) bool {
	if oldVal == nil && newVal == nil {
		return false
	}
	if oldVal == nil || newVal == nil {
		return true
	}
	return *oldVal != *newVal
}

func ToPtr[T any](v T) *T {
	return &v
}
