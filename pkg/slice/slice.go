// Copyright (c) 2026 HanQA. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slice holds the generic projections the standard [slices] package
// does not provide.
package slice

// Map applies transform to every element. A nil input stays nil.
func Map[T, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}
	return result
}

// Compact drops zero values, keeping order. Used after normalising config
// lists where blank entries mean "not set".
func Compact[T comparable](input []T) []T {
	var zero T
	result := make([]T, 0, len(input))
	for _, v := range input {
		if v != zero {
			result = append(result, v)
		}
	}
	return result
}
