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
)

const (
	ChunkWidth  = 16
	ChunkHeight = 128
	ChunkVoxels = ChunkWidth * ChunkWidth * ChunkHeight
)

var ErrVoxelOutOfRange = errors.New("voxel position out of range")

// VoxelPos is a position inside a chunk.
type VoxelPos struct {
	X, Z, Y int
}

func (v VoxelPos) String() string {
	return fmt.Sprintf("{%dx %dz %dy}", v.X, v.Z, v.Y)
}

func (v VoxelPos) Add(o VoxelPos) VoxelPos {
	return VoxelPos{X: v.X + o.X, Z: v.Z + o.Z, Y: v.Y + o.Y}
}

// Index linearises the position into the packed block array.
// x and z accept 16 as well; accessors still reject indexes past the
// end of their array.
func (v VoxelPos) Index() (int, error) {
	if v.X < 0 || v.X > ChunkWidth || v.Z < 0 || v.Z > ChunkWidth || v.Y < 0 || v.Y >= ChunkHeight {
		return 0, fmt.Errorf("%w: %s", ErrVoxelOutOfRange, v)
	}
	return v.Y + v.Z*ChunkHeight + v.X*ChunkHeight*ChunkWidth, nil
}

// NibbleIndex returns the byte index into a half-byte array and whether
// the value lives in the upper nibble.
func (v VoxelPos) NibbleIndex() (int, bool, error) {
	i, err := v.Index()
	if err != nil {
		return 0, false, err
	}
	return i / 2, i&1 == 1, nil
}

// Inside reports whether the position is within 0..15 horizontally
// and 0..127 vertically.
func (v VoxelPos) Inside() bool {
	return v.X >= 0 && v.X < ChunkWidth && v.Z >= 0 && v.Z < ChunkWidth && v.Y >= 0 && v.Y < ChunkHeight
}
