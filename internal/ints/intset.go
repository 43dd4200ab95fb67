// Package ints implements a set of small non-negative integers.
package ints

import "math/bits"

const IntSizeShift = 5 + (^uint(0) >> 32 & 1)
const IntSize = 1 << IntSizeShift

// Set is a bit set, negative items are ignored.
type Set struct {
	chunks []uint
}

func NewSet(items ...int) *Set {
	result := &Set{}
	result.Add(items...)
	return result
}

func bitMask(item int) uint {
	return 1 << (uint(item) & (IntSize - 1))
}

func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			continue
		}

		index := item >> IntSizeShift
		if index >= len(s.chunks) {
			chunks := make([]uint, index+1)
			copy(chunks, s.chunks)
			s.chunks = chunks
		}
		s.chunks[index] |= bitMask(item)
	}
	return s
}

func (s *Set) Contains(item int) bool {
	index := item >> IntSizeShift
	return item >= 0 && index < len(s.chunks) && s.chunks[index]&bitMask(item) != 0
}

func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount(chunk)
	}
	return result
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	for i, chunk := range s.chunks {
		for chunk != 0 {
			bit := bits.TrailingZeros(chunk)
			result = append(result, i<<IntSizeShift+bit)
			chunk &= chunk - 1
		}
	}
	return result
}
