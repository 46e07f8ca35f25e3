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

package dispatchers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/maxsupermanhd/lac"
	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render"
)

var (
	ErrNoChunks    = errors.New("no chunks to render")
	ErrNoRenderers = errors.New("no renderers")
)

// ChunkSource is where the loader stage reads chunks from.
type ChunkSource interface {
	GetChunk(ctx context.Context, pos primitives.ChunkPos) (*chunkStorage.ChunkData, error)
}

type PipelineConfig struct {
	// Loaders is the number of loader goroutines.
	Loaders int
	// RenderWorkers bounds how many renderers draw one chunk at once.
	RenderWorkers int
	// MaxResident bounds how far loading may run ahead of rendering.
	MaxResident int
	Logger      *slog.Logger
	// Progress is called after every rendered chunk.
	Progress func(done, total int)
}

// NewPipelineConfig reads loaders, render_workers and max_resident.
func NewPipelineConfig(cfg *lac.ConfSubtree, logger *slog.Logger) PipelineConfig {
	return PipelineConfig{
		Loaders:       cfg.GetDSInt(1, "loaders"),
		RenderWorkers: cfg.GetDSInt(4, "render_workers"),
		MaxResident:   cfg.GetDSInt(64, "max_resident"),
		Logger:        logger,
	}
}

type PipelineStats struct {
	Chunks int
	Loaded int
	// Empty counts chunks rendered without any sections, failed loads
	// included.
	Empty          int
	LoadFailures   int
	RenderFailures int
	Elapsed        time.Duration
}

// slot holds one chunk between the loader and the renderer. ready is
// closed once chunk is published.
type slot struct {
	ready chan struct{}
	chunk *render.Chunk
}

// PipelineRender loads chunks in render order on loader goroutines
// and hands them to a single renderer goroutine.
type PipelineRender struct {
	cfg   PipelineConfig
	src   ChunkSource
	rends []render.ChunkRenderer
	l     *slog.Logger

	order     []primitives.ChunkPos
	slots     map[primitives.ChunkPos]*slot
	mu        sync.Mutex
	next      int
	tokens    chan struct{}
	neighbour bool
	needs     render.DataNeeds

	loaded       atomic.Int64
	empty        atomic.Int64
	loadFailures atomic.Int64
}

// NewPipelineRender checks arguments and allocates every renderer's
// surface. Nothing is read from src yet.
func NewPipelineRender(src ChunkSource, coords []primitives.ChunkPos, bounds primitives.Bounds, rends []render.ChunkRenderer, cfg PipelineConfig) (*PipelineRender, error) {
	if len(coords) == 0 {
		return nil, ErrNoChunks
	}
	if len(rends) == 0 {
		return nil, ErrNoRenderers
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Loaders < 1 {
		cfg.Loaders = 1
	}
	if cfg.RenderWorkers < 1 {
		cfg.RenderWorkers = runtime.NumCPU()
	}
	if cfg.MaxResident < 1 {
		cfg.MaxResident = 64
	}
	p := &PipelineRender{
		cfg:   cfg,
		src:   src,
		rends: rends,
		l:     cfg.Logger,
		order: append([]primitives.ChunkPos(nil), coords...),
		slots: make(map[primitives.ChunkPos]*slot, len(coords)),
	}
	primitives.SortRenderOrder(p.order)
	rows := map[int]int{}
	for _, c := range p.order {
		if _, ok := p.slots[c]; ok {
			continue
		}
		p.slots[c] = &slot{ready: make(chan struct{})}
		rows[c.X]++
	}
	p.order = dedupe(p.order)
	for _, r := range rends {
		p.needs = p.needs.Merge(r.Needs())
	}
	p.neighbour = len(p.needs.Neighbours) > 0
	lead := cfg.MaxResident
	if p.neighbour {
		widest := 0
		for _, n := range rows {
			widest = max(widest, n)
		}
		lead = max(lead, 3*widest+2)
	}
	p.tokens = make(chan struct{}, lead)
	for _, r := range rends {
		if err := r.SetSurface(bounds.TopRight, bounds.BottomLeft); err != nil {
			return nil, fmt.Errorf("allocating %s: %w", r.Name(), err)
		}
	}
	return p, nil
}

func dedupe(c []primitives.ChunkPos) []primitives.ChunkPos {
	ret := c[:0]
	for i, p := range c {
		if i > 0 && c[i-1] == p {
			continue
		}
		ret = append(ret, p)
	}
	return ret
}

// Run renders every chunk and finalises every renderer exactly once.
// Failures of single chunks or renderers are logged and counted.
func (p *PipelineRender) Run(ctx context.Context) (PipelineStats, error) {
	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(p.cfg.Loaders)
	for i := 0; i < p.cfg.Loaders; i++ {
		go func() {
			defer wg.Done()
			p.workerLoad(ctx)
		}()
	}
	renderFailures := p.workerRender()
	wg.Wait()

	for _, r := range p.rends {
		if err := finalise(r); err != nil {
			p.l.Error("finalise failed", "renderer", r.Name(), "err", err)
			renderFailures++
		}
	}
	stats := PipelineStats{
		Chunks:         len(p.order),
		Loaded:         int(p.loaded.Load()),
		Empty:          int(p.empty.Load()),
		LoadFailures:   int(p.loadFailures.Load()),
		RenderFailures: renderFailures,
		Elapsed:        time.Since(start),
	}
	p.l.Info("pipeline done", "chunks", stats.Chunks, "loaded", stats.Loaded, "empty", stats.Empty,
		"loadFailures", stats.LoadFailures, "renderFailures", stats.RenderFailures, "elapsed", stats.Elapsed)
	return stats, nil
}

func finalise(r render.ChunkRenderer) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.Finalise()
}

// workerLoad claims the next coordinate in order once a residency
// token is free, loads it and publishes it.
func (p *PipelineRender) workerLoad(ctx context.Context) {
	for {
		p.tokens <- struct{}{}
		p.mu.Lock()
		if p.next >= len(p.order) {
			p.mu.Unlock()
			<-p.tokens
			return
		}
		pos := p.order[p.next]
		p.next++
		p.mu.Unlock()

		c := p.load(ctx, pos)
		s := p.slots[pos]
		p.mu.Lock()
		s.chunk = c
		p.mu.Unlock()
		close(s.ready)
	}
}

func (p *PipelineRender) load(ctx context.Context, pos primitives.ChunkPos) *render.Chunk {
	d, err := p.src.GetChunk(ctx, pos)
	if err != nil {
		p.loadFailures.Add(1)
		if d == nil {
			p.l.Warn("failed to load chunk, rendering it empty", "pos", pos, "err", err)
			p.empty.Add(1)
			return render.NewDummyChunk(pos)
		}
		p.l.Warn("chunk partially loaded", "pos", pos, "err", err)
	}
	p.loaded.Add(1)
	d.Pos = pos
	c := render.NewChunk(d)
	if c.IsDummy() {
		p.l.Debug("chunk has no sections", "pos", pos)
		p.empty.Add(1)
	}
	return c
}

// resident waits for pos and returns its chunk, nil when evicted.
func (p *PipelineRender) resident(pos primitives.ChunkPos) *render.Chunk {
	s, ok := p.slots[pos]
	if !ok {
		return nil
	}
	<-s.ready
	p.mu.Lock()
	defer p.mu.Unlock()
	return s.chunk
}

func (p *PipelineRender) evict(pos primitives.ChunkPos) {
	s := p.slots[pos]
	p.mu.Lock()
	had := s.chunk != nil
	s.chunk = nil
	p.mu.Unlock()
	if had {
		<-p.tokens
	}
}

var neighbourSides = []render.Direction{render.North, render.East, render.South, render.West}

func (p *PipelineRender) box(center primitives.ChunkPos) *render.ChunkBox {
	b := &render.ChunkBox{Center: p.resident(center)}
	for _, side := range neighbourSides {
		off, _ := side.ChunkOffset()
		for _, n := range p.needs.Neighbours {
			if n == off {
				b.Set(side, p.resident(center.Add(off)))
			}
		}
	}
	return b
}

// workerRender walks the same order as the loaders and feeds each
// chunk to all renderers in parallel.
func (p *PipelineRender) workerRender() int {
	pool := pond.NewPool(p.cfg.RenderWorkers)
	defer pool.StopAndWait()
	var failures atomic.Int64
	evictedUpTo := 0
	for i, pos := range p.order {
		box := p.box(pos)
		var wg sync.WaitGroup
		for _, r := range p.rends {
			wg.Add(1)
			pool.Submit(func() {
				defer wg.Done()
				defer func() {
					if rec := recover(); rec != nil {
						failures.Add(1)
						p.l.Error("renderer panicked", "renderer", r.Name(), "pos", pos, "panic", rec, "stack", string(debug.Stack()))
					}
				}()
				if err := r.Render(box); err != nil {
					failures.Add(1)
					p.l.Error("render failed", "renderer", r.Name(), "pos", pos, "err", err)
				}
			})
		}
		wg.Wait()

		if !p.neighbour {
			p.evict(pos)
		} else {
			for evictedUpTo < i && p.order[evictedUpTo].X >= pos.X+2 {
				p.evict(p.order[evictedUpTo])
				evictedUpTo++
			}
		}
		if p.cfg.Progress != nil {
			p.cfg.Progress(i+1, len(p.order))
		}
	}
	for ; evictedUpTo < len(p.order); evictedUpTo++ {
		p.evict(p.order[evictedUpTo])
	}
	return int(failures.Load())
}
