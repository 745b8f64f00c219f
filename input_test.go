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

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadProblem(t *testing.T) {
	p, err := readProblem(strings.NewReader("3 2 5\n10 -20 30\n12 18\n"))
	require.NoError(t, err)

	assert.Equal(t, []int64{10, -20, 30}, p.A)
	assert.Equal(t, []int64{12, 18}, p.B)
	assert.Equal(t, int64(5), p.K)
	assert.Zero(t, p.Defaulted)
}

func TestReadProblemWhitespace(t *testing.T) {
	p, err := readProblem(strings.NewReader("  1\t1\n\n 3 \r\n 5\n\n  8  "))
	require.NoError(t, err)

	assert.Equal(t, []int64{5}, p.A)
	assert.Equal(t, []int64{8}, p.B)
	assert.Equal(t, int64(3), p.K)
}

func TestReadProblemEmptySequences(t *testing.T) {
	p, err := readProblem(strings.NewReader("0 0 7"))
	require.NoError(t, err)

	assert.Empty(t, p.A)
	assert.Empty(t, p.B)
}

func TestReadProblemMalformedHeader(t *testing.T) {
	for _, input := range []string{
		"",
		"2 3",
		"2 x 1\n1 2\n1 2 3\n",
		"1 1 99999999999999999999\n1\n1\n",
		"-1 2 3\n1 2\n",
		"2 134217728 1\n",
	} {
		_, err := readProblem(strings.NewReader(input))
		assert.ErrorIs(t, err, errMalformedHeader, "input %q", input)
	}
}

func TestReadProblemDefaultsBadElements(t *testing.T) {
	p, err := readProblem(strings.NewReader("3 2 1\n4 oops 6\n7"))
	require.NoError(t, err)

	assert.Equal(t, []int64{4, 0, 6}, p.A)
	assert.Equal(t, []int64{7, 0}, p.B)
	assert.Equal(t, 2, p.Defaulted)
}

func TestReadProblemTokenTooLong(t *testing.T) {
	input := "1 1 1\n" + strings.Repeat("9", maxTokenSize+1) + "\n1\n"

	_, err := readProblem(strings.NewReader(input))
	require.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestProblemStringRoundTrip(t *testing.T) {
	p := problem{A: []int64{3, -1}, B: []int64{}, K: 2}
	assert.Equal(t, "2 0 2\n3 -1\n\n", p.String())

	parsed, err := readProblem(strings.NewReader(p.String()))
	require.NoError(t, err)
	assert.Equal(t, p.A, parsed.A)
	assert.Empty(t, parsed.B)
	assert.Equal(t, p.K, parsed.K)
}
