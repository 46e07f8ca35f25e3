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

package render

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/maxsupermanhd/minedraft/primitives"
)

var ErrCompoundDirection = errors.New("direction is not a single cardinal, ordinal or vertical direction")

// Direction is a set of faces. Ordinal directions are two cardinal
// bits together.
type Direction uint8

const (
	Top    Direction = 1
	North  Direction = 2
	East   Direction = 4
	South  Direction = 8
	West   Direction = 16
	Bottom Direction = 32

	NorthEast = North | East
	SouthEast = South | East
	SouthWest = South | West
	NorthWest = North | West

	Cardinal = North | East | South | West
	All      = Top | Cardinal | Bottom
)

var directionNames = map[Direction]string{
	Top:       "top",
	North:     "north",
	NorthEast: "northeast",
	East:      "east",
	SouthEast: "southeast",
	South:     "south",
	SouthWest: "southwest",
	West:      "west",
	NorthWest: "northwest",
	Bottom:    "bottom",
	All:       "all",
}

func (d Direction) String() string {
	if n, ok := directionNames[d]; ok {
		return n
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// IsCardinal is true for exactly one of north, east, south or west.
func (d Direction) IsCardinal() bool {
	return d&^Cardinal == 0 && bits.OnesCount8(uint8(d)) == 1
}

// IsOrdinal is true for two adjacent cardinal bits.
func (d Direction) IsOrdinal() bool {
	switch d {
	case NorthEast, SouthEast, SouthWest, NorthWest:
		return true
	}
	return false
}

// Has reports whether d shares any face with o.
func (d Direction) Has(o Direction) bool {
	return d&o != 0
}

func (d Direction) Negate() (Direction, error) {
	switch d {
	case North:
		return South, nil
	case NorthEast:
		return SouthWest, nil
	case East:
		return West, nil
	case SouthEast:
		return NorthWest, nil
	case South:
		return North, nil
	case SouthWest:
		return NorthEast, nil
	case West:
		return East, nil
	case NorthWest:
		return SouthEast, nil
	case Top:
		return Bottom, nil
	case Bottom:
		return Top, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrCompoundDirection, d)
}

// Angle is the clockwise rotation in eighths of a turn that makes a
// north-up top-down image face d.
func (d Direction) Angle() (int, error) {
	switch d {
	case North:
		return 0, nil
	case NorthEast:
		return 7, nil
	case East:
		return 6, nil
	case SouthEast:
		return 5, nil
	case South:
		return 4, nil
	case SouthWest:
		return 3, nil
	case West:
		return 2, nil
	case NorthWest:
		return 1, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrCompoundDirection, d)
}

// Offset is the voxel step towards face d. All is no step.
func (d Direction) Offset() (primitives.VoxelPos, error) {
	switch d {
	case Top:
		return primitives.VoxelPos{Y: 1}, nil
	case Bottom:
		return primitives.VoxelPos{Y: -1}, nil
	case North:
		return primitives.VoxelPos{X: -1}, nil
	case South:
		return primitives.VoxelPos{X: 1}, nil
	case East:
		return primitives.VoxelPos{Z: -1}, nil
	case West:
		return primitives.VoxelPos{Z: 1}, nil
	case All:
		return primitives.VoxelPos{}, nil
	}
	return primitives.VoxelPos{}, fmt.Errorf("%w: no single face for %s", ErrCompoundDirection, d)
}

// ChunkOffset is the neighbouring chunk on side d.
func (d Direction) ChunkOffset() (primitives.ChunkPos, error) {
	switch d {
	case North:
		return primitives.ChunkPos{X: -1}, nil
	case South:
		return primitives.ChunkPos{X: 1}, nil
	case East:
		return primitives.ChunkPos{Z: -1}, nil
	case West:
		return primitives.ChunkPos{Z: 1}, nil
	}
	return primitives.ChunkPos{}, fmt.Errorf("%w: %s has no neighbour", ErrCompoundDirection, d)
}
