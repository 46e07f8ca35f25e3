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
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/davecgh/go-spew/spew"
	humanize "github.com/dustin/go-humanize"
	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/imageOutput"
	"github.com/maxsupermanhd/minedraft/level"
	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render"
	"github.com/maxsupermanhd/minedraft/render/dispatchers"
	"github.com/maxsupermanhd/minedraft/render/renderers"
	"github.com/shirou/gopsutil/mem"
)

var ErrNoRenderspecs = errors.New("no renderspecs given")

type runOptions struct {
	rends   []render.ChunkRenderer
	chunks  []primitives.ChunkPos
	storage chunkStorage.Storage
	verbose bool
	logger  *slog.Logger
	state   *runState
}

// buildRenderers expands renderspecs. Names repeated across specs are
// skipped like repeats inside one renderspec.
func buildRenderers(f *renderers.Factory, specs []string, debug bool) ([]render.ChunkRenderer, error) {
	if len(specs) == 0 {
		return nil, ErrNoRenderspecs
	}
	ret := []render.ChunkRenderer{}
	seen := map[string]bool{}
	for _, spec := range specs {
		rs, err := f.Make(spec)
		if err != nil {
			return nil, fmt.Errorf("renderspec %q: %w", spec, err)
		}
		for _, r := range rs {
			if seen[r.Name()] {
				log.Printf("Duplicate file name. Skipping %s", r.Name())
				continue
			}
			seen[r.Name()] = true
			if debug {
				log.Printf("Renderer %s (%s):\n%s", r.Name(), r.Recipe(), spew.Sdump(r.Recipe()))
				for _, o := range r.Overlays() {
					log.Printf("Overlay of %s (%s):\n%s", r.Name(), o.Recipe(), spew.Sdump(o.Recipe()))
				}
			}
			ret = append(ret, r)
		}
	}
	return ret, nil
}

// runRender does one full render: renderspecs, world, pipeline, files.
// The returned error is non-nil when anything failed to save.
func runRender(ctx context.Context, o runOptions) error {
	started := time.Now()
	rends := o.rends
	writer, err := imageOutput.NewWriterFromConf(cfg.SubTree("output"), log.Default())
	if err != nil {
		return err
	}

	storages, err := openStorage(ctx, o.storage)
	if err != nil {
		return err
	}
	defer chunkStorage.CloseStorages(storages)

	lvl, err := level.Open(ctx, storages[0].Driver, o.chunks, log.Default())
	if err != nil {
		return err
	}
	log.Printf("Found %s chunks within %s", humanize.Comma(int64(len(lvl.Chunks()))), lvl.Bounds())

	tracker := newProgressTracker(o.state.b, o.state.id)
	pc := dispatchers.NewPipelineConfig(cfg.SubTree("pipeline"), o.logger)
	pc.Progress = func(done, total int) {
		tracker.report("render", done, total)
		if o.verbose {
			log.Printf("Rendered chunk %d/%d", done, total)
		}
	}
	stats, err := lvl.Render(ctx, rends, pc)
	if err != nil {
		return err
	}
	log.Printf("Rendered %s chunks in %s (%d failed to load, %d render errors)",
		humanize.Comma(int64(stats.Chunks)), stats.Elapsed.Round(time.Millisecond), stats.LoadFailures, stats.RenderFailures)

	imgs := make([]imageOutput.Image, len(rends))
	for i, r := range rends {
		imgs[i] = r
	}
	results, saveErr := writer.SaveAll(imgs)
	o.state.addOutputs(results)
	tracker.finish("save", len(results), len(imgs))

	var total int64
	for _, r := range results {
		total += r.Size
	}
	summary := fmt.Sprintf("Saved %d of %d images (%s) in %s", len(results), len(imgs), humanize.Bytes(uint64(total)), time.Since(started).Round(time.Millisecond))
	if vm, err := mem.VirtualMemory(); err == nil {
		summary += ", memory used " + humanize.Bytes(vm.Used)
	}
	log.Println(summary)
	return saveErr
}
