// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Number is any built-in numeric type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// CompareStrings orders strings ascending with nil last.
func CompareStrings(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

// CompareNumbers orders numbers ascending with nil last.
func CompareNumbers[N Number](a, b *N) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

// CompareValues orders two loosely typed values ascending. nil sorts last,
// numbers compare numerically, and a number compared with a string is
// compared as text. Any other pairing is treated as equal.
func CompareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return 1
	}
	if b == nil {
		return -1
	}

	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	an, aIsNum := toFloat(a)
	bn, bIsNum := toFloat(b)

	switch {
	case aIsStr && bIsStr:
		return cmp.Compare(as, bs)
	case aIsNum && bIsNum:
		return cmp.Compare(an, bn)
	case aIsStr && bIsNum:
		return cmp.Compare(as, formatFloat(bn))
	case aIsNum && bIsStr:
		return cmp.Compare(formatFloat(an), bs)
	}
	return 0
}

// ComparePath returns a comparator over the value found at a gjson path in
// each item's JSON encoding. Items that fail to encode sort last.
func ComparePath[T any](path string) func(a, b T) int {
	return func(a, b T) int {
		return CompareValues(valueAt(encode(&a), path), valueAt(encode(&b), path))
	}
}

// encode marshals through a pointer so pointer receiver MarshalJSON
// methods, such as the one on unstructured.Unstructured, are used.
func encode(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

// valueAt resolves path in raw JSON to nil, string or float64.
func valueAt(raw []byte, path string) any {
	if raw == nil {
		return nil
	}
	return resultValue(gjson.GetBytes(raw, path))
}

func resultValue(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		return r.Float()
	case gjson.String:
		return r.Str
	case gjson.True, gjson.False:
		return strconv.FormatBool(r.Bool())
	default:
		return r.Raw
	}
}

// textAt resolves path in raw JSON to display text.
func textAt(raw []byte, path string) string {
	if raw == nil {
		return ""
	}
	r := gjson.GetBytes(raw, path)
	if !r.Exists() || r.Type == gjson.Null {
		return ""
	}
	if r.IsArray() {
		parts := r.Array()
		out := ""
		for i, p := range parts {
			if i > 0 {
				out += ", "
			}
			out += p.String()
		}
		return out
	}
	return r.String()
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func formatFloat(f float64) string {
	return fmt.Sprint(f)
}
