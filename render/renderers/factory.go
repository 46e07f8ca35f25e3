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
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/maxsupermanhd/lac"
	"github.com/maxsupermanhd/minedraft/render"
)

var (
	ErrInvalidOption    = errors.New("invalid renderer option")
	ErrLightRange       = errors.New("light level out of range")
	ErrMultipleSpecials = errors.New("multiple overlays must be separated using the colon character")
	ErrOverlayRotation  = errors.New("you cannot specify rotation for overlays")
	ErrOverlayAngle     = errors.New("you cannot specify angles for overlays")
	ErrOverlayMultiples = errors.New("you cannot specify multiples for overlays")
	ErrNeedsWildcard    = errors.New("option multiple needs a wildcard in filename")
	ErrNoFilename       = errors.New("renderspec has no filename")
)

var specialVariants = map[string]func() Variant{
	"contour": func() Variant { return contourVariant{} },
}

var rotationTokens = map[string][]Option[render.Direction]{}

func init() {
	single := map[render.Direction][]string{
		render.North:     {"n", "north"},
		render.NorthEast: {"ne", "northeast"},
		render.East:      {"e", "east"},
		render.SouthEast: {"se", "southeast"},
		render.South:     {"s", "south"},
		render.SouthWest: {"sw", "southwest"},
		render.West:      {"w", "west"},
		render.NorthWest: {"nw", "northwest"},
	}
	for d, toks := range single {
		for _, t := range toks {
			rotationTokens[t] = []Option[render.Direction]{{d, d.String()}}
		}
	}
	for name, dirs := range map[string][]render.Direction{
		"cardinal": {render.North, render.East, render.South, render.West},
		"ordinal":  {render.NorthEast, render.SouthEast, render.SouthWest, render.NorthWest},
	} {
		for _, d := range dirs {
			rotationTokens[name] = append(rotationTokens[name], Option[render.Direction]{d, d.String()})
		}
	}
}

var lightTokens = map[string]uint8{
	"day":      255,
	"night":    50,
	"twilight": 127,
}

// Factory turns renderspecs into renderers.
//
// A renderspec is filename[:options[:overlay...]], options being a
// comma separated list. Listing several values for one option makes a
// renderer per combination, the filename then needs the matching
// wildcard: %r rotation, %l light, %d depth dimming, %a angle.
type Factory struct {
	Colours ColourMap
	Logger  *log.Logger
}

func NewFactory(colours ColourMap, logger *log.Logger) *Factory {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Factory{Colours: colours, Logger: logger}
}

// NewFactoryFromConf starts from the default colours and applies the
// override file named by colours_path, if any.
func NewFactoryFromConf(cfg *lac.ConfSubtree, logger *log.Logger) (*Factory, error) {
	f := NewFactory(DefaultColours(), logger)
	path := cfg.GetDSString("", "colours_path")
	if path == "" {
		return f, nil
	}
	o, err := LoadColourOverrides(path)
	if err != nil {
		return nil, err
	}
	if err := f.Colours.Apply(o); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Logger.Printf("Loaded %d colour overrides from %s", len(o), path)
	return f, nil
}

type parsedOptions struct {
	variant   string
	rotations []Option[render.Direction]
	lights    []Option[uint8]
	dimdepths []Option[bool]
	angles    []Option[bool]
}

func parseOptions(opts string) (*parsedOptions, error) {
	ret := &parsedOptions{}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "" {
			continue
		}
		if _, ok := specialVariants[opt]; ok {
			if ret.variant != "" && ret.variant != opt {
				return nil, fmt.Errorf("%w: %s and %s", ErrMultipleSpecials, ret.variant, opt)
			}
			ret.variant = opt
			continue
		}
		if r, ok := rotationTokens[opt]; ok {
			ret.rotations = append(ret.rotations, r...)
			continue
		}
		if l, ok := lightTokens[opt]; ok {
			ret.lights = append(ret.lights, Option[uint8]{l, opt})
			continue
		}
		switch opt {
		case "dimdepth":
			ret.dimdepths = append(ret.dimdepths, Option[bool]{true, opt})
			continue
		case "litdepth":
			ret.dimdepths = append(ret.dimdepths, Option[bool]{false, opt})
			continue
		case "oblique":
			ret.angles = append(ret.angles, Option[bool]{true, opt})
			continue
		case "topdown":
			ret.angles = append(ret.angles, Option[bool]{false, opt})
			continue
		}
		if lvl, ok := strings.CutPrefix(opt, "light"); ok {
			l, err := strconv.Atoi(lvl)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid light level specified: %s", ErrInvalidOption, opt)
			}
			if l < 0 || l > 255 {
				return nil, fmt.Errorf("%w: %s", ErrLightRange, opt)
			}
			ret.lights = append(ret.lights, Option[uint8]{uint8(l), opt})
			continue
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidOption, opt)
	}
	return ret, nil
}

// Make builds every renderer a renderspec asks for.
func (f *Factory) Make(spec string) ([]*Renderer, error) {
	filename, rest, _ := strings.Cut(spec, ":")
	if filename == "" {
		return nil, fmt.Errorf("%w: %q", ErrNoFilename, spec)
	}
	opts, overlayList, hasOverlays := strings.Cut(rest, ":")
	var overlays []string
	if hasOverlays {
		overlays = strings.Split(overlayList, ":")
	}
	p, err := parseOptions(opts)
	if err != nil {
		return nil, err
	}
	def := DefaultRecipe()
	if len(p.rotations) == 0 {
		p.rotations = append(p.rotations, def.Rotation)
	}
	if len(p.lights) == 0 {
		p.lights = append(p.lights, def.Light)
	}
	if len(p.dimdepths) == 0 {
		p.dimdepths = append(p.dimdepths, def.DimDepth)
	}
	if len(p.angles) == 0 {
		p.angles = append(p.angles, def.Oblique)
	}
	for _, w := range []struct {
		n        int
		wildcard string
		what     string
	}{
		{len(p.rotations), "%r", "rotation"},
		{len(p.lights), "%l", "light level"},
		{len(p.dimdepths), "%d", "depth dimming"},
		{len(p.angles), "%a", "angle"},
	} {
		if w.n > 1 && !strings.Contains(filename, w.wildcard) {
			return nil, fmt.Errorf("%w: %s multiple needs %s in filename", ErrNeedsWildcard, w.what, w.wildcard)
		}
	}

	ret := []*Renderer{}
	seen := map[string]bool{}
	for _, rot := range p.rotations {
		rotfile := strings.ReplaceAll(filename, "%r", rot.Token)
		for _, light := range p.lights {
			lightfile := strings.ReplaceAll(rotfile, "%l", light.Token)
			for _, dim := range p.dimdepths {
				dimfile := strings.ReplaceAll(lightfile, "%d", dim.Token)
				for _, angle := range p.angles {
					name := strings.ReplaceAll(dimfile, "%a", angle.Token)
					if seen[name] {
						f.Logger.Printf("Duplicate file name. Skipping %s", name)
						continue
					}
					seen[name] = true
					recipe := Recipe{Rotation: rot, Light: light, DimDepth: dim, Oblique: angle}
					if recipe.Oblique.Value && !recipe.Rotation.Value.IsCardinal() {
						return nil, fmt.Errorf("%w: %s faces %s", ErrObliqueOrdinal, name, recipe.Rotation.Token)
					}
					r := NewRenderer(name, recipe, f.Colours, f.variant(p.variant), f.Logger)
					for _, o := range overlays {
						or, err := f.makeOverlay(o, recipe)
						if err != nil {
							return nil, err
						}
						r.AddOverlay(or)
					}
					ret = append(ret, r)
				}
			}
		}
	}
	return ret, nil
}

// makeOverlay builds an overlay that inherits rotation and angle from
// its parent and falls back to its light and depth dimming.
func (f *Factory) makeOverlay(opts string, parent Recipe) (*Renderer, error) {
	p, err := parseOptions(opts)
	if err != nil {
		return nil, err
	}
	if len(p.rotations) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrOverlayRotation, opts)
	}
	if len(p.angles) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrOverlayAngle, opts)
	}
	if len(p.lights) > 1 || len(p.dimdepths) > 1 {
		return nil, fmt.Errorf("%w: %s", ErrOverlayMultiples, opts)
	}
	recipe := parent
	if len(p.lights) == 1 {
		recipe.Light = p.lights[0]
	}
	if len(p.dimdepths) == 1 {
		recipe.DimDepth = p.dimdepths[0]
	}
	return NewRenderer(opts, recipe, f.Colours, f.variant(p.variant), f.Logger), nil
}

func (f *Factory) variant(name string) Variant {
	if mk, ok := specialVariants[name]; ok {
		return mk()
	}
	return baseVariant{}
}
