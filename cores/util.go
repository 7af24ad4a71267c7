/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cores

import (
	"fmt"
	"math"
	"strings"
)

// Base62 character set
const (
	base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	base62base  = int64(len(base62Chars))
)

// Encode converts a non-negative id to its base62 short code, without padding.
func Encode(id int64) string {
	if id < 0 {
		panic(fmt.Sprintf("cores: cannot encode negative id %d", id))
	}

	if id == 0 {
		return base62Chars[:1]
	}

	var result strings.Builder
	for tempID := id; tempID > 0; tempID /= base62base {
		result.WriteByte(base62Chars[tempID%base62base])
	}

	return reverseString(result.String())
}

// Reverse string
func reverseString(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Decode converts a short code produced by Encode back to its id.
func Decode(code string) (int64, error) {
	if code == "" {
		return 0, fmt.Errorf("%w: empty code", ErrInvalidEncoding)
	}

	if len(code) > 1 && code[0] == base62Chars[0] {
		return 0, fmt.Errorf("%w: leading zero in %q", ErrInvalidEncoding, code)
	}

	var id int64
	for _, c := range code {
		pos := strings.IndexRune(base62Chars, c)
		if pos == -1 {
			return 0, fmt.Errorf("%w: invalid character %q", ErrInvalidEncoding, c)
		}

		if id > (math.MaxInt64-int64(pos))/base62base {
			return 0, fmt.Errorf("%w: %q overflows int64", ErrInvalidEncoding, code)
		}

		id = id*base62base + int64(pos)
	}

	return id, nil
}
