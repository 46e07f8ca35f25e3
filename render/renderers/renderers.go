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

	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render"
	"github.com/maxsupermanhd/minedraft/render/raster"
)

var (
	ErrSurfaceAllocated = errors.New("surface already allocated")
	ErrNoSurface        = errors.New("surface not allocated")
	ErrNotFinalised     = errors.New("image is not finalised")
	ErrFinalised        = errors.New("image is already finalised")
	ErrObliqueOrdinal   = errors.New("oblique maps can only face a cardinal direction")
)

const (
	// opaqueEnough ends a ray once the accumulated alpha reaches it.
	opaqueEnough  = 1 - 0.004
	imageHeadroom = primitives.ChunkHeight
)

// Renderer draws one image. Overlays are drawn over the same chunks
// and blended on top when finalising.
type Renderer struct {
	name     string
	recipe   Recipe
	colours  ColourMap
	variant  Variant
	overlays []*Renderer
	logger   *log.Logger

	topRight, bottomLeft primitives.ChunkPos
	image                *raster.Image
	lightbuffer          []raster.Pixel
	dpos                 []int
	finalised            bool
}

var _ render.ChunkRenderer = (*Renderer)(nil)

// NewRenderer makes a renderer with its own copy of colours. A nil
// variant draws block colours.
func NewRenderer(name string, recipe Recipe, colours ColourMap, variant Variant, logger *log.Logger) *Renderer {
	if variant == nil {
		variant = baseVariant{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Renderer{
		name:    name,
		recipe:  recipe,
		colours: colours,
		variant: variant,
		logger:  logger,
	}
	variant.Prepare(r)
	return r
}

func (r *Renderer) Name() string {
	return r.name
}

func (r *Renderer) Recipe() Recipe {
	return r.recipe
}

func (r *Renderer) Overlays() []*Renderer {
	return r.overlays
}

func (r *Renderer) AddOverlay(o *Renderer) {
	r.overlays = append(r.overlays, o)
}

// Needs asks for the chunk in front of the viewer on oblique maps.
func (r *Renderer) Needs() render.DataNeeds {
	n := render.DataNeeds{}
	if r.recipe.Oblique.Value && r.recipe.Rotation.Value.IsCardinal() {
		if front, err := r.recipe.Rotation.Value.Negate(); err == nil {
			if off, err := front.ChunkOffset(); err == nil {
				n.Neighbours = append(n.Neighbours, off)
			}
		}
	}
	for _, o := range r.overlays {
		n = n.Merge(o.Needs())
	}
	return n
}

// Trim is true for images that do not fill their rectangle.
func (r *Renderer) Trim() bool {
	return r.recipe.Oblique.Value || r.recipe.Rotation.Value.IsOrdinal()
}

func (r *Renderer) SetSurface(topRight, bottomLeft primitives.ChunkPos) error {
	if r.image != nil {
		return fmt.Errorf("%w: %s", ErrSurfaceAllocated, r.name)
	}
	size := bottomLeft.Sub(topRight).Add(primitives.ChunkPos{X: 1, Z: 1})
	w, h := size.Z*primitives.ChunkWidth, size.X*primitives.ChunkWidth
	if r.recipe.Oblique.Value {
		dir := r.recipe.Rotation.Value
		switch {
		case dir == render.North || dir == render.South:
			h += imageHeadroom
		case dir == render.East || dir == render.West:
			w, h = size.X*primitives.ChunkWidth, size.Z*primitives.ChunkWidth+imageHeadroom
		default:
			return fmt.Errorf("%w: %s", ErrObliqueOrdinal, dir)
		}
	}
	r.topRight, r.bottomLeft = topRight, bottomLeft
	r.image = raster.NewImage(w, h)
	if r.recipe.Oblique.Value {
		r.lightbuffer = make([]raster.Pixel, w*primitives.ChunkHeight)
		for i := range r.lightbuffer {
			r.lightbuffer[i] = raster.DefaultPixel()
		}
		r.dpos = make([]int, w/primitives.ChunkWidth)
		for i := range r.dpos {
			r.dpos[i] = noDepth
		}
	}
	for _, o := range r.overlays {
		if err := o.SetSurface(topRight, bottomLeft); err != nil {
			return err
		}
	}
	return nil
}

// Render draws the center chunk of box and passes it on to overlays.
func (r *Renderer) Render(box *render.ChunkBox) error {
	if r.image == nil {
		return fmt.Errorf("%w: %s", ErrNoSurface, r.name)
	}
	if r.finalised {
		return fmt.Errorf("%w: %s", ErrFinalised, r.name)
	}
	if box == nil || box.Center == nil {
		return fmt.Errorf("%w: center", render.ErrNoSuchChunk)
	}
	var err error
	if r.recipe.Oblique.Value {
		err = r.renderOblique(box)
	} else {
		err = r.renderFlat(box)
	}
	if err != nil {
		return fmt.Errorf("%s at %s: %w", r.name, box.Center.Pos(), err)
	}
	for _, o := range r.overlays {
		if err := o.Render(box); err != nil {
			return err
		}
	}
	return nil
}

// Finalise rotates top-down images into place and blends overlays on.
func (r *Renderer) Finalise() error {
	if r.image == nil {
		return fmt.Errorf("%w: %s", ErrNoSurface, r.name)
	}
	if r.finalised {
		return fmt.Errorf("%w: %s", ErrFinalised, r.name)
	}
	img := r.variant.PostProcess(r.image)
	if !r.recipe.Oblique.Value {
		angle, err := r.recipe.Rotation.Value.Angle()
		if err != nil {
			return err
		}
		img = img.Rotate(angle)
	}
	for _, o := range r.overlays {
		if err := o.Finalise(); err != nil {
			return err
		}
		oimg, err := o.Image()
		if err != nil {
			return err
		}
		img.Overlay(oimg)
	}
	r.image = img
	r.lightbuffer = nil
	r.dpos = nil
	r.finalised = true
	return nil
}

func (r *Renderer) Image() (*raster.Image, error) {
	if !r.finalised {
		return nil, fmt.Errorf("%w: %s", ErrNotFinalised, r.name)
	}
	return r.image, nil
}

// blendpixel puts source, lit and dimmed by depth, underneath target.
func (r *Renderer) blendpixel(source raster.Pixel, depth int, light float64, target *raster.Pixel) {
	if source.A <= 0 {
		return
	}
	source.Light(light)
	if r.recipe.DimDepth.Value {
		source.Light(0.5 + float64(depth)/256)
	}
	target.BlendUnder(source)
}

func (r *Renderer) blendblock(box *render.ChunkBox, pos primitives.VoxelPos, dir render.Direction, target *raster.Pixel) error {
	light, err := r.variant.ResolveLight(r, box, pos, dir)
	if err != nil {
		return err
	}
	c, err := r.variant.ResolveColour(r, box, pos, dir)
	if err != nil {
		return err
	}
	r.blendpixel(c, pos.Y, light, target)
	return nil
}
