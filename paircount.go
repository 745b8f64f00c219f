// Copyright (c) 2023-2026 D. Bohdan
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import "fmt"

// A predicate reports whether two values from opposite sequences form a match.
type predicate func(x, y int64) (bool, error)

// absDiff returns |x - y| without overflowing for any pair of int64 values.
func absDiff(x, y int64) uint64 {
	if x >= y {
		return uint64(x) - uint64(y)
	}

	return uint64(y) - uint64(x)
}

func strictMatch(k int64) predicate {
	return func(x, y int64) (bool, error) {
		return k > 0 && absDiff(x, y) < uint64(k), nil
	}
}

func inclusiveMatch(k int64) predicate {
	return func(x, y int64) (bool, error) {
		return k >= 0 && absDiff(x, y) <= uint64(k), nil
	}
}

// countPairs greedily matches elements of a and b, which must be sorted ascending.
// A matched pair consumes both elements. Otherwise the cursor at the smaller value moves on.
func countPairs(a, b []int64, match predicate) (int, error) {
	count := 0
	i, j := 0, 0

	for i < len(a) && j < len(b) {
		ok, err := match(a[i], b[j])
		if err != nil {
			return count, fmt.Errorf("matching %d and %d: %w", a[i], b[j], err)
		}

		switch {
		case ok:
			count++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}

	return count, nil
}
