/*
	MineDraft, renderer for block game maps
	Copyright (C) 2022 Maxim Zhuchkov

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.

	Contact me via mail: q3.max.2011@yandex.ru or Discord: MaX#6717
*/

package primitives

import (
	"errors"
	"strconv"
)

var ErrBadBase36 = errors.New("failed to convert from base36")

// ParseBase36 decodes chunk file name numbers. Upper case digits are
// accepted, a leading minus makes the value negative.
func ParseBase36(s string) (int, error) {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, ErrBadBase36
	}
	ret := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case c >= 'a' && c <= 'z':
			d = int(c-'a') + 10
		case c >= 'A' && c <= 'Z':
			d = int(c-'A') + 10
		default:
			return 0, ErrBadBase36
		}
		ret = ret*36 + d
	}
	if neg {
		ret = -ret
	}
	return ret, nil
}

// FormatBase36 encodes i in lower case base36.
func FormatBase36(i int) string {
	return strconv.FormatInt(int64(i), 36)
}

// FormatBase36Mod64 encodes i modulo 64, normalised to 0..63,
// as used by the directory levels of the save tree.
func FormatBase36Mod64(i int) string {
	i %= 64
	if i < 0 {
		i += 64
	}
	return FormatBase36(i)
}
