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

package main

import (
	"net/http"
	"strconv"

	"github.com/maxsupermanhd/minedraft/render/renderers"
)

// colours is the table the renderers were made with.
var colours = renderers.DefaultColours()

func coloursHandler(w http.ResponseWriter, r *http.Request) {
	type blockColour struct {
		Name string `json:"name,omitempty"`
		Top  string `json:"top"`
		Side string `json:"side"`
	}
	ret := map[string]blockColour{}
	for i, c := range colours {
		if c.Top.A == 0 && c.Side.A == 0 && renderers.BlockName(uint8(i)) == "" {
			continue
		}
		ret[strconv.Itoa(i)] = blockColour{
			Name: renderers.BlockName(uint8(i)),
			Top:  c.Top.Hex(),
			Side: c.Side.Hex(),
		}
	}
	respondJSON(w, http.StatusOK, ret)
}
