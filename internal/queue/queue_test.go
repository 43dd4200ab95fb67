package queue

import (
	"fmt"
	"testing"

	. "github.com/ava12/unitcalc/internal/test"
)

func TestComputeSize(t *testing.T) {
	for i := 0; i <= 33; i++ {
		name := fmt.Sprintf("%d elements", i)
		t.Run(name, func(t *testing.T) {
			size := computeSize(i)
			Assert(t, size >= minSize, "expecting at least %d, got %d", minSize, size)
			Assert(t, size&(size+1) == 0, "expecting 2^n - 1, got %b", size)
			Assert(t, size >= i, "expecting size >= %d, got %d", i, size)
			if size > minSize {
				Assert(t, (size>>1) < i, "expecting size/2 < %d, got size %d", i, size)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	q := New[int]()
	ExpectInt(t, minSize+1, len(q.items))
	ExpectBool(t, true, q.IsEmpty())
	_, ok := q.First()
	ExpectBool(t, false, ok)
}

func TestFifo(t *testing.T) {
	q := New[int](1, 2)
	for i := 3; i <= 20; i++ {
		q.Append(i)
	}
	for i := 1; i <= 20; i++ {
		item, ok := q.First()
		ExpectBool(t, true, ok)
		ExpectInt(t, i, item)
	}
	ExpectBool(t, true, q.IsEmpty())
}

func TestWrappedGrow(t *testing.T) {
	q := New[int]()
	q.Append(1).Append(2).Append(3)
	q.First()
	q.First()
	q.Append(4).Append(5).Append(6)
	for i := 3; i <= 6; i++ {
		item, _ := q.First()
		ExpectInt(t, i, item)
	}
	ExpectBool(t, true, q.IsEmpty())
}

func TestReset(t *testing.T) {
	q := New[int](1, 2, 3)
	q.Reset()
	ExpectBool(t, true, q.IsEmpty())
	q.Append(7)
	item, _ := q.First()
	ExpectInt(t, 7, item)
}
