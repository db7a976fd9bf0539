// Package mapper holds generic slice mapping helpers shared by the
// persistence mappers and the DTO assemblers.
package mapper

// MapSlice applies mapFunc to each element. Returns nil for a nil input.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	if items == nil {
		return nil
	}
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}

// KeyBy indexes mapped items by key. A later item wins on duplicate keys.
func KeyBy[T any, K comparable, R any](items []T, key func(T) K, mapFunc func(T) R) map[K]R {
	result := make(map[K]R, len(items))
	for _, item := range items {
		result[key(item)] = mapFunc(item)
	}
	return result
}

// GroupBy buckets mapped items by key, keeping input order within a bucket.
func GroupBy[T any, K comparable, R any](items []T, key func(T) K, mapFunc func(T) R) map[K][]R {
	result := make(map[K][]R)
	for _, item := range items {
		k := key(item)
		result[k] = append(result[k], mapFunc(item))
	}
	return result
}
