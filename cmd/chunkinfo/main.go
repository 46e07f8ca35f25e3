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
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/davecgh/go-spew/spew"
	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/chunkStorage/filesystemChunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
	"github.com/maxsupermanhd/minedraft/render/renderers"
)

var (
	fspath = flag.String("path", "", "Path to a chunk file, or to a world with -x and -z")
	chunkX = flag.Int("x", 0, "Chunk X when -path is a world")
	chunkZ = flag.Int("z", 0, "Chunk Z when -path is a world")
	top    = flag.Int("top", 10, "How many of the most common blocks to list")
	dump   = flag.Bool("dump", false, "Dump the decoded summary with spew")
)

type sectionInfo struct {
	Present bool
	Length  int
}

type chunkSummary struct {
	Pos        primitives.ChunkPos
	Sections   map[string]sectionInfo
	MinHeight  int
	MaxHeight  int
	TopBlocks  []blockCount
	DecodeErrs string
}

type blockCount struct {
	ID    uint8
	Name  string
	Count int
}

func main() {
	flag.Parse()
	if *fspath == "" {
		flag.Usage()
		os.Exit(2)
	}
	p := *fspath
	pos := primitives.ChunkPos{X: *chunkX, Z: *chunkZ}
	st, err := os.Stat(p)
	must(err)
	if st.IsDir() {
		p = filesystemChunkStorage.ChunkPath(p, pos)
	} else if fp, ok := filesystemChunkStorage.ParseChunkFilename(st.Name()); ok {
		pos = fp
	}
	f, err := os.Open(p)
	must(err)
	defer f.Close()
	d, err := chunkStorage.DecodeAlphaGzip(f, pos)
	if d == nil {
		log.Fatalf("Failed to decode %s: %v", p, err)
	}
	s := summarize(d, *top)
	if err != nil {
		s.DecodeErrs = err.Error()
	}
	if *dump {
		spew.Dump(s)
		return
	}
	fmt.Printf("Chunk %s (%s)\n", s.Pos, p)
	for _, n := range []string{"Blocks", "Data", "SkyLight", "BlockLight"} {
		sec := s.Sections[n]
		fmt.Printf("  %-10s present=%v length=%d\n", n, sec.Present, sec.Length)
	}
	if s.DecodeErrs != "" {
		fmt.Printf("  errors: %s\n", s.DecodeErrs)
	}
	fmt.Printf("  surface height %d..%d\n", s.MinHeight, s.MaxHeight)
	for _, b := range s.TopBlocks {
		fmt.Printf("  %3d %-20s %d\n", b.ID, b.Name, b.Count)
	}
}

func summarize(d *chunkStorage.ChunkData, top int) chunkSummary {
	s := chunkSummary{
		Pos: d.Pos,
		Sections: map[string]sectionInfo{
			"Blocks":     {d.Blocks != nil, len(d.Blocks)},
			"Data":       {d.Data != nil, len(d.Data)},
			"SkyLight":   {d.SkyLight != nil, len(d.SkyLight)},
			"BlockLight": {d.BlockLight != nil, len(d.BlockLight)},
		},
	}
	if d.Blocks == nil {
		return s
	}
	var counts [256]int
	for _, b := range d.Blocks {
		counts[b]++
	}
	for id, c := range counts {
		if c > 0 {
			s.TopBlocks = append(s.TopBlocks, blockCount{uint8(id), renderers.BlockName(uint8(id)), c})
		}
	}
	sort.Slice(s.TopBlocks, func(i, j int) bool {
		if s.TopBlocks[i].Count != s.TopBlocks[j].Count {
			return s.TopBlocks[i].Count > s.TopBlocks[j].Count
		}
		return s.TopBlocks[i].ID < s.TopBlocks[j].ID
	})
	if len(s.TopBlocks) > top {
		s.TopBlocks = s.TopBlocks[:top]
	}
	s.MinHeight = primitives.ChunkHeight
	for x := 0; x < primitives.ChunkWidth; x++ {
		for z := 0; z < primitives.ChunkWidth; z++ {
			h := surface(d.Blocks, x, z)
			s.MinHeight = min(s.MinHeight, h)
			s.MaxHeight = max(s.MaxHeight, h)
		}
	}
	return s
}

// surface is the y of the highest non-air block of a column, -1 if none.
func surface(blocks []byte, x, z int) int {
	for y := primitives.ChunkHeight - 1; y >= 0; y-- {
		i, err := primitives.VoxelPos{X: x, Z: z, Y: y}.Index()
		if err != nil {
			continue
		}
		if blocks[i] != 0 {
			return y
		}
	}
	return -1
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
