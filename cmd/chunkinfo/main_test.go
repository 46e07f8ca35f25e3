package main

import (
	"testing"

	"github.com/maxsupermanhd/minedraft/chunkStorage"
	"github.com/maxsupermanhd/minedraft/primitives"
)

func TestSummarize(t *testing.T) {
	d := &chunkStorage.ChunkData{Blocks: make([]byte, chunkStorage.BlocksLen)}
	for x := 0; x < primitives.ChunkWidth; x++ {
		for z := 0; z < primitives.ChunkWidth; z++ {
			i, _ := primitives.VoxelPos{X: x, Z: z, Y: 0}.Index()
			d.Blocks[i] = 7
		}
	}
	i, _ := primitives.VoxelPos{X: 3, Z: 4, Y: 60}.Index()
	d.Blocks[i] = 2
	s := summarize(d, 2)
	if s.MinHeight != 0 || s.MaxHeight != 60 {
		t.Fatalf("heights %d..%d", s.MinHeight, s.MaxHeight)
	}
	if len(s.TopBlocks) != 2 || s.TopBlocks[0].ID != 0 || s.TopBlocks[1].ID != 7 || s.TopBlocks[1].Count != 256 {
		t.Fatalf("top blocks %+v", s.TopBlocks)
	}
	if s.Sections["Blocks"].Length != chunkStorage.BlocksLen || s.Sections["Data"].Present {
		t.Fatalf("sections %+v", s.Sections)
	}
}
