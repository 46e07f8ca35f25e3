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

package renderers

import (
	"fmt"

	"github.com/maxsupermanhd/minedraft/render"
)

// Option is a value together with the token it is shown as in
// output filenames.
type Option[T any] struct {
	Value T
	Token string
}

// Recipe describes how one image is drawn.
type Recipe struct {
	Rotation Option[render.Direction]
	Light    Option[uint8]
	DimDepth Option[bool]
	Oblique  Option[bool]
}

func DefaultRecipe() Recipe {
	return Recipe{
		Rotation: Option[render.Direction]{render.North, "north"},
		Light:    Option[uint8]{127, "twilight"},
		DimDepth: Option[bool]{true, "dimdepth"},
		Oblique:  Option[bool]{false, "topdown"},
	}
}

func (r Recipe) String() string {
	return fmt.Sprintf("%s,%s,%s,%s", r.Rotation.Token, r.Light.Token, r.DimDepth.Token, r.Oblique.Token)
}
