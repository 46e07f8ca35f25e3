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
	"fmt"
	"regexp"
	"strconv"
)

var (
	ErrBadGeometry = errors.New("bad chunk geometry, expected WxH or WxH+Z+X")
	geometryRegexp = regexp.MustCompile(`^(\d+)x(\d+)(?:([+-]-?\d+)([+-]-?\d+))?$`)
)

// ParseGeometry expands WxH or WxH+Z+X into the chunk coordinates it
// covers. W runs along Z (west), H along X (south). Without offsets the
// rectangle is centred on the origin.
func ParseGeometry(s string) ([]ChunkPos, error) {
	m := geometryRegexp.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrBadGeometry, s)
	}
	w, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGeometry, err)
	}
	west, south := -(w / 2), -(h / 2)
	if m[3] != "" {
		west, err = parseOffset(m[3])
		if err != nil {
			return nil, err
		}
		south, err = parseOffset(m[4])
		if err != nil {
			return nil, err
		}
	}
	ret := make([]ChunkPos, 0, w*h)
	for xx := 0; xx < h; xx++ {
		for zz := 0; zz < w; zz++ {
			ret = append(ret, ChunkPos{X: xx + south, Z: zz + west})
		}
	}
	return ret, nil
}

// "+3", "-3" and "+-3" are all valid offsets.
func parseOffset(s string) (int, error) {
	neg := s[0] == '-'
	v, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, fmt.Errorf("%w: offset %q", ErrBadGeometry, s)
	}
	if neg {
		v = -v
	}
	return v, nil
}
