package acir

import "github.com/bits-and-blooms/bitset"

// MemoryBlock tracks which cells of a declared memory block have been
// written, so the container can reject a read of a cell that was never
// initialized instead of silently emitting a constraint over garbage.
type MemoryBlock struct {
	Tag       BlockType
	Len       uint32
	initCells *bitset.BitSet
}

func newMemoryBlock(tag BlockType, length uint32) *MemoryBlock {
	return &MemoryBlock{Tag: tag, Len: length, initCells: bitset.New(uint(length))}
}

func (b *MemoryBlock) markInitialized(index uint32) {
	b.initCells.Set(uint(index))
}

func (b *MemoryBlock) isInitialized(index uint32) bool {
	if uint(index) >= b.initCells.Len() {
		return false
	}
	return b.initCells.Test(uint(index))
}
