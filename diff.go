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
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

type generator struct {
	MaxLen   int
	MaxValue int64
	MaxK     int64
	// Probability that an element of B is placed exactly k away from an element of A.
	Boundary float64
}

type diffConfig struct {
	Generator generator
	Jobs      int
	OutDir    string
	Seed      int64
	Trials    int
	Verbose   int
}

type divergentCase struct {
	Hash      uint64
	Input     string
	Inclusive int
	Strict    int
}

type diffReport struct {
	Trials    int
	Divergent int
	Cases     []divergentCase
}

func (g generator) value(rng *rand.Rand) int64 {
	return rng.Int63n(2*g.MaxValue+1) - g.MaxValue
}

func (g generator) problem(rng *rand.Rand) problem {
	p := problem{
		A: make([]int64, rng.Intn(g.MaxLen+1)),
		B: make([]int64, rng.Intn(g.MaxLen+1)),
		K: rng.Int63n(g.MaxK + 1),
	}

	for i := range p.A {
		p.A[i] = g.value(rng)
	}

	for j := range p.B {
		if len(p.A) > 0 && rng.Float64() < g.Boundary {
			offset := p.K
			if rng.Intn(2) == 0 {
				offset = -offset
			}

			p.B[j] = p.A[rng.Intn(len(p.A))] + offset
			continue
		}

		p.B[j] = g.value(rng)
	}

	return p
}

// solve sorts copies of the sequences and counts pairs with both predicates.
func solve(p problem) (strict, inclusive int) {
	a := slices.Clone(p.A)
	b := slices.Clone(p.B)
	slices.Sort(a)
	slices.Sort(b)

	// The built-in predicates never fail.
	strict, _ = countPairs(a, b, strictMatch(p.K))
	inclusive, _ = countPairs(a, b, inclusiveMatch(p.K))

	return strict, inclusive
}

func caseFileName(hash uint64, ext string) string {
	return fmt.Sprintf("case_%016x%s", hash, ext)
}

func writeCase(dir string, c divergentCase) error {
	inPath := filepath.Join(dir, caseFileName(c.Hash, ".in"))
	if err := os.WriteFile(inPath, []byte(c.Input), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", inPath, err)
	}

	outPath := filepath.Join(dir, caseFileName(c.Hash, ".out"))
	if err := os.WriteFile(outPath, []byte(strconv.Itoa(c.Inclusive)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", outPath, err)
	}

	return nil
}

// runDiff generates random problems and collects those on which the strict and
// inclusive predicates disagree. Each trial has its own seed, so the report does
// not depend on the number of jobs.
func runDiff(ctx context.Context, config diffConfig, logger *log.Logger) (diffReport, error) {
	if config.OutDir != "" {
		if err := os.MkdirAll(config.OutDir, 0o755); err != nil {
			return diffReport{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	results := make([]*divergentCase, config.Trials)

	g, ctx := errgroup.WithContext(ctx)
	if config.Jobs > 0 {
		g.SetLimit(config.Jobs)
	}

	for trial := 0; trial < config.Trials; trial++ {
		trial := trial

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(config.Seed + int64(trial)))
			p := config.Generator.problem(rng)

			strict, inclusive := solve(p)
			if strict == inclusive {
				return nil
			}

			input := p.String()
			results[trial] = &divergentCase{
				Hash:      xxh3.HashString(input),
				Input:     input,
				Inclusive: inclusive,
				Strict:    strict,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return diffReport{}, err
	}

	report := diffReport{Trials: config.Trials}
	seen := make(map[uint64]struct{})

	for _, c := range results {
		if c == nil {
			continue
		}

		report.Divergent++
		if _, ok := seen[c.Hash]; ok {
			continue
		}
		seen[c.Hash] = struct{}{}

		if config.Verbose >= 1 {
			logger.Printf("case %016x: inclusive=%d strict=%d", c.Hash, c.Inclusive, c.Strict)
		}

		if config.OutDir != "" {
			if err := writeCase(config.OutDir, *c); err != nil {
				return report, err
			}
		}

		report.Cases = append(report.Cases, *c)
	}

	return report, nil
}
