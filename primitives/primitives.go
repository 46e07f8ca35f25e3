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
	"fmt"
	"sort"
)

// ChunkPos is a chunk coordinate in chunk units.
// North is -X, south is +X, east is -Z and west is +Z.
type ChunkPos struct {
	X, Z int
}

func (p ChunkPos) String() string {
	return fmt.Sprintf("{%dx %dz}", p.X, p.Z)
}

func (p ChunkPos) Add(o ChunkPos) ChunkPos {
	return ChunkPos{X: p.X + o.X, Z: p.Z + o.Z}
}

func (p ChunkPos) Sub(o ChunkPos) ChunkPos {
	return ChunkPos{X: p.X - o.X, Z: p.Z - o.Z}
}

// Before reports whether p comes before o in render order
// (descending X, then descending Z).
func (p ChunkPos) Before(o ChunkPos) bool {
	if p.X != o.X {
		return p.X > o.X
	}
	return p.Z > o.Z
}

// SortRenderOrder sorts coordinates into render order in place.
func SortRenderOrder(c []ChunkPos) {
	sort.Slice(c, func(i, j int) bool {
		return c[i].Before(c[j])
	})
}

// Bounds is the bounding box of a set of chunks. TopRight holds the
// component-wise minimum and BottomLeft the maximum.
type Bounds struct {
	TopRight   ChunkPos
	BottomLeft ChunkPos
	seeded     bool
}

func (b *Bounds) Update(p ChunkPos) {
	if !b.seeded {
		b.TopRight = p
		b.BottomLeft = p
		b.seeded = true
		return
	}
	b.TopRight.X = min(b.TopRight.X, p.X)
	b.TopRight.Z = min(b.TopRight.Z, p.Z)
	b.BottomLeft.X = max(b.BottomLeft.X, p.X)
	b.BottomLeft.Z = max(b.BottomLeft.Z, p.Z)
}

func (b *Bounds) Empty() bool {
	return !b.seeded
}

// Size returns the box dimensions in chunks (inclusive).
func (b *Bounds) Size() ChunkPos {
	if !b.seeded {
		return ChunkPos{}
	}
	return b.BottomLeft.Sub(b.TopRight).Add(ChunkPos{1, 1})
}

func (b Bounds) String() string {
	return fmt.Sprintf("%s..%s", b.TopRight, b.BottomLeft)
}
