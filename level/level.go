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

package level

import (
	"context"
	"io"
	"log"

	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render"
	"github.com/maxsupermanhd/minedraft/render/dispatchers"
)

// Level is the set of chunks a run renders.
type Level struct {
	storage chunkStorage.ChunkStorage
	logger  *log.Logger
	chunks  []primitives.ChunkPos
	bounds  primitives.Bounds
}

// Open discovers every chunk in storage, or when requested is not nil
// only those of the requested chunks that exist.
func Open(ctx context.Context, storage chunkStorage.ChunkStorage, requested []primitives.ChunkPos, logger *log.Logger) (*Level, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	l := &Level{storage: storage, logger: logger}
	if requested == nil {
		all, err := storage.ListChunks(ctx)
		if err != nil {
			return nil, err
		}
		for _, c := range all {
			l.add(c)
		}
		return l, nil
	}
	seen := map[primitives.ChunkPos]bool{}
	for _, c := range requested {
		if seen[c] {
			continue
		}
		seen[c] = true
		ok, err := storage.HasChunk(ctx, c)
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Printf("Warning: chunk %s does not exist", c)
			continue
		}
		l.add(c)
	}
	return l, nil
}

func (l *Level) add(c primitives.ChunkPos) {
	l.chunks = append(l.chunks, c)
	l.bounds.Update(c)
}

// Chunks are returned in render order.
func (l *Level) Chunks() []primitives.ChunkPos {
	ret := append([]primitives.ChunkPos(nil), l.chunks...)
	primitives.SortRenderOrder(ret)
	return ret
}

func (l *Level) Bounds() primitives.Bounds {
	return l.bounds
}

// Render feeds every chunk of the level to rends and finalises them.
func (l *Level) Render(ctx context.Context, rends []render.ChunkRenderer, cfg dispatchers.PipelineConfig) (dispatchers.PipelineStats, error) {
	p, err := dispatchers.NewPipelineRender(l.storage, l.chunks, l.bounds, rends, cfg)
	if err != nil {
		return dispatchers.PipelineStats{}, err
	}
	l.logger.Printf("Rendering %d chunks within %s with %d renderers", len(l.chunks), l.bounds, len(rends))
	return p.Run(ctx)
}
