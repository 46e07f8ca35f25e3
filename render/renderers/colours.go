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
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/maxsupermanhd/minedraft/render/raster"
)

// ColourPair is how a block looks from above and from the side.
type ColourPair struct {
	Top  raster.Pixel
	Side raster.Pixel
}

// ColourMap is indexed by block id.
type ColourMap [256]ColourPair

type colourEntry struct {
	name      string
	top, side string
}

var defaultColourTable = []colourEntry{
	{"Air", "ffffff00", "ffffff00"},
	{"Stone", "7f7f7fff", "7f7f7fff"},
	{"Grass", "7fbf4fff", "8f5f3fff"},
	{"Dirt", "8f5f3fff", "8f5f3fff"},
	{"Cobblestone", "6f6f6fff", "6f6f6fff"},
	{"Wood", "6f4f1fff", "6f4f1fff"},
	{"Sapling", "3f8f3f1f", "3f8f3f1f"},
	{"Bedrock", "000000ff", "000000ff"},
	{"Water", "1f4fff7f", "1f4fff7f"},
	{"Stationary water", "1f4fff7f", "1f4fff7f"},
	{"Lava", "ff5a00ff", "ff5a00ff"},
	{"Stationary lava", "ff5a00ff", "ff5a00ff"},
	{"Sand", "ffef7fff", "ffef7fff"},
	{"Gravel", "8f7f7fff", "8f7f7fff"},
	{"Gold ore", "8f8c7dff", "8f8c7dff"},
	{"Iron ore", "88827fff", "88827fff"},
	{"Coal ore", "737373ff", "737373ff"},
	{"Log", "665133ff", "665133ff"},
	{"Leaves", "3cc0297f", "3cc0297f"},
	{"Sponge", "eeff00ff", "eeff00ff"},
	{"Glass", "ffffff1f", "ffffff1f"},
	{"Red cloth", "0000aaff", "0000aaff"},
	{"Orange cloth", "de8832ff", "de8832ff"},
	{"Yellow cloth", "dede32ff", "dede32ff"},
	{"Lime cloth", "88de32ff", "88de32ff"},
	{"Green cloth", "32de32ff", "32de32ff"},
	{"Aqua green cloth", "32de88ff", "32de88ff"},
	{"Cyan cloth", "32dedeff", "32dedeff"},
	{"Blue cloth", "68a3deff", "68a3deff"},
	{"Purple cloth", "7878deff", "7878deff"},
	{"Indigo cloth", "8832deff", "8832deff"},
	{"Violet cloth", "ae4adeff", "ae4adeff"},
	{"Magenta cloth", "de32deff", "de32deff"},
	{"Pink cloth", "de3288ff", "de3288ff"},
	{"Black cloth", "4d4d4dff", "4d4d4dff"},
	{"Gray cloth", "dededeff", "dededeff"},
	{"White cloth", "dededeff", "dededeff"},
	{"Yellow flower", "ffff001f", "ffff001f"},
	{"Red rose", "ff1f101f", "ff1f101f"},
	{"Brown mushroom", "ff9f2f1f", "ff9f2f1f"},
	{"Red mushroom", "ff3f3f1f", "ff3f3f1f"},
	{"Gold Block", "efff2fff", "efff2fff"},
	{"Iron Block", "bfbfbfff", "bfbfbfff"},
	{"Double step", "c8c8c8ff", "c8c8c8ff"},
	{"Step", "c8c8c8ff", "c8c8c8ff"},
	{"Brick", "aa563eff", "aa563eff"},
	{"TNT", "a05341ff", "a05341ff"},
	{"Bookcase", "9f5f1fff", "9f5f1fff"},
	{"Mossy cobblestone", "6f7f6fff", "6f7f6fff"},
	{"Obsidian", "1a0b2bff", "1a0b2bff"},
	{"Torch", "ffff3f3f", "ffff3f3f"},
	{"Fire", "ff2f2fcf", "ff2f2fcf"},
	{"Mob spawner", "df4f2fff", "df4f2fff"},
	{"Wooden stairs", "6f4f2fff", "6f4f2fff"},
	{"Chest", "7d5b26ff", "7d5b26ff"},
	{"Redstone wire", "9f1f1f2f", "9f1f1f2f"},
	{"Diamond ore", "818c8fff", "818c8fff"},
	{"Diamond block", "2da698ff", "2da698ff"},
	{"Workbench", "725838ff", "725838ff"},
	{"Crops", "92c000ff", "92c000ff"},
	{"Soil", "5f3a1eff", "5f3a1eff"},
	{"Furnace", "606060ff", "606060ff"},
	{"Burning furnace", "606060ff", "606060ff"},
	{"Sign post", "6f5b36ff", "6f5b36ff"},
	{"Wooden door", "5f2f1fff", "5f2f1fff"},
	{"Ladder", "6f4f1f2f", "6f4f1f2f"},
	{"Minecart tracks", "7f7f6f2f", "7f7f6f2f"},
	{"Cobblestone stairs", "737373ff", "737373ff"},
	{"Wall sign", "6f5b36ff", "6f5b36ff"},
	{"Lever", "8f8f7f0f", "8f8f7f0f"},
	{"Stone pressure plate", "7f7f7f7f", "7f7f7f4f"},
	{"Iron door", "bfbfbfff", "bfbfbfff"},
	{"Wooden pressure plate", "6f4f1f7f", "6f4f1f4f"},
	{"Redstone ore", "836b6bff", "836b6bff"},
	{"Glowing redstone ore", "836b6bff", "836b6bff"},
	{"Redstone torch, off", "9f1f1f1f", "9f1f1f1f"},
	{"Redstone torch, on", "ff0000cf", "ff0000cf"},
	{"Stone button", "fafafa0f", "fafafa0f"},
	{"Snow", "efefefff", "efefefff"},
	{"Ice", "8fdfff4f", "8fdfff4f"},
	{"Snow block", "fafafaff", "fafafaff"},
	{"Cactus", "2fcf2fff", "2fcf2fff"},
	{"Clay", "9f9fcfff", "9f9fcfff"},
	{"Reed", "7fff7f1f", "7fff7f1f"},
	{"Jukebox", "9f5f1fff", "9f5f1fff"},
	{"Fence", "7f5f2f4f", "7f5f2f4f"},
}

var defaultColours = func() ColourMap {
	var m ColourMap
	for i := range m {
		m[i] = ColourPair{Top: raster.DefaultPixel(), Side: raster.DefaultPixel()}
	}
	for i, e := range defaultColourTable {
		m[i] = ColourPair{Top: mustHex(e.top), Side: mustHex(e.side)}
	}
	return m
}()

// DefaultColours returns a copy of the built-in table.
func DefaultColours() ColourMap {
	return defaultColours
}

// BlockName is the display name of a block id, empty for unknown ids.
func BlockName(id uint8) string {
	if int(id) < len(defaultColourTable) {
		return defaultColourTable[id].name
	}
	return ""
}

// ParseHexColour reads rrggbbaa, optionally prefixed with #.
func ParseHexColour(s string) (raster.Pixel, error) {
	var r, g, b, a uint8
	s = strings.TrimPrefix(s, "#")
	if len(s) != 8 {
		return raster.Pixel{}, fmt.Errorf("colour %q is not rrggbbaa", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &r, &g, &b, &a); err != nil {
		return raster.Pixel{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return raster.PixelFromBytes(r, g, b, a), nil
}

func mustHex(s string) raster.Pixel {
	p, err := ParseHexColour(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ColourOverride replaces either face of one block, empty keeps it.
type ColourOverride struct {
	Top  string `json:"top"`
	Side string `json:"side"`
}

// LoadColourOverrides reads a JSON object keyed by block id.
func LoadColourOverrides(path string) (map[uint8]ColourOverride, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]ColourOverride
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	ret := make(map[uint8]ColourOverride, len(raw))
	for k, v := range raw {
		id, err := strconv.ParseUint(k, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("block id %q: %w", k, err)
		}
		ret[uint8(id)] = v
	}
	return ret, nil
}

// Apply writes overrides into m.
func (m *ColourMap) Apply(o map[uint8]ColourOverride) error {
	for id, c := range o {
		if c.Top != "" {
			p, err := ParseHexColour(c.Top)
			if err != nil {
				return fmt.Errorf("block %d top: %w", id, err)
			}
			m[id].Top = p
		}
		if c.Side != "" {
			p, err := ParseHexColour(c.Side)
			if err != nil {
				return fmt.Errorf("block %d side: %w", id, err)
			}
			m[id].Side = p
		}
	}
	return nil
}

// SetAlpha sets the alpha of both faces for every id where keep
// returns false.
func (m *ColourMap) SetAlpha(alpha float64, keep func(id int) bool) {
	for i := range m {
		if keep(i) {
			continue
		}
		m[i].Top.A = alpha
		m[i].Side.A = alpha
	}
}
