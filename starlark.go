// Copyright (c) 2023-2025 D. Bohdan
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
	"fmt"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func StarlarkAbs(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &x); err != nil {
		return nil, err
	}

	switch v := x.(type) {
	case starlark.Int:
		if v.Sign() < 0 {
			return starlark.MakeInt(0).Sub(v), nil
		}
		return v, nil
	case starlark.Float:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	}

	return nil, fmt.Errorf("abs: got %s, want int or float", x.Type())
}

func StarlarkInspect(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var prefix starlark.String
	var value starlark.Value

	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &value, "prefix?", &prefix); err != nil {
		return nil, err
	}

	prefixStr := ""
	if prefix.Len() > 0 {
		prefixStr = prefix.GoString()
	}

	log.Printf("inspect: %s%v\n", prefixStr, value)

	return value, nil
}

// compilePredicate turns an expression over a, b and k into a match predicate.
// The expression is wrapped in a lambda so it is parsed once and called per pair.
func compilePredicate(expr string, k int64) (predicate, error) {
	thread := &starlark.Thread{Name: "predicate"}

	env := starlark.StringDict{
		"abs":     starlark.NewBuiltin("abs", StarlarkAbs),
		"inspect": starlark.NewBuiltin("inspect", StarlarkInspect),
	}

	val, err := starlark.EvalOptions(syntax.LegacyFileOptions(), thread, "predicate", "lambda a, b, k: ("+expr+"\n)", env)
	if err != nil {
		return nil, fmt.Errorf("invalid predicate: %w", err)
	}

	fn, ok := val.(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("predicate compiled to %s, not a function", val.Type())
	}

	kVal := starlark.MakeInt64(k)

	return func(x, y int64) (bool, error) {
		res, err := starlark.Call(thread, fn, starlark.Tuple{starlark.MakeInt64(x), starlark.MakeInt64(y), kVal}, nil)
		if err != nil {
			return false, err
		}

		return bool(res.Truth()), nil
	}, nil
}
