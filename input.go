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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	maxSequenceLen = 1 << 26
	maxTokenSize   = 1 << 20
)

var errMalformedHeader = errors.New("malformed header")

type problem struct {
	A []int64
	B []int64
	K int64

	// Number of elements that were missing or unparsable and read as 0.
	Defaulted int
}

type tokenReader struct {
	scanner *bufio.Scanner
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)

	return &tokenReader{scanner: scanner}
}

// next returns the next integer token. ok is false at the end of input.
func (tr *tokenReader) next() (value int64, ok bool, err error) {
	if !tr.scanner.Scan() {
		return 0, false, tr.scanner.Err()
	}

	value, err = strconv.ParseInt(tr.scanner.Text(), 10, 64)
	return value, true, err
}

func (tr *tokenReader) header() (n, m int, k int64, err error) {
	var fields [3]int64

	for i := range fields {
		value, ok, err := tr.next()
		if err != nil || !ok {
			return 0, 0, 0, errMalformedHeader
		}

		fields[i] = value
	}

	for _, count := range fields[:2] {
		if count < 0 || count > maxSequenceLen {
			return 0, 0, 0, fmt.Errorf("%w: sequence length %d out of range", errMalformedHeader, count)
		}
	}

	return int(fields[0]), int(fields[1]), fields[2], nil
}

func (tr *tokenReader) sequence(n int, defaulted *int) ([]int64, error) {
	seq := make([]int64, n)

	for i := range seq {
		value, ok, err := tr.next()
		if err != nil {
			var numErr *strconv.NumError
			if !errors.As(err, &numErr) {
				return nil, err
			}
		}

		if !ok || err != nil {
			*defaulted++
			continue
		}

		seq[i] = value
	}

	return seq, nil
}

// readProblem parses "n m k" followed by n and then m integers.
// Only the header is validated. Bad elements read as 0.
func readProblem(r io.Reader) (problem, error) {
	tr := newTokenReader(r)

	n, m, k, err := tr.header()
	if err != nil {
		return problem{}, err
	}

	p := problem{K: k}

	if p.A, err = tr.sequence(n, &p.Defaulted); err != nil {
		return problem{}, fmt.Errorf("reading sequence A: %w", err)
	}

	if p.B, err = tr.sequence(m, &p.Defaulted); err != nil {
		return problem{}, fmt.Errorf("reading sequence B: %w", err)
	}

	return p, nil
}

func formatSequence(seq []int64) string {
	fields := make([]string, len(seq))
	for i, v := range seq {
		fields[i] = strconv.FormatInt(v, 10)
	}

	return strings.Join(fields, " ")
}

// String renders the problem in the input format readProblem accepts.
func (p problem) String() string {
	return fmt.Sprintf("%d %d %d\n%s\n%s\n", len(p.A), len(p.B), p.K, formatSequence(p.A), formatSequence(p.B))
}
