// Package bmap implements basic map with []byte key type.
package bmap

// BMap implements generic hashmap with []byte key type.
// It is intended to store a fixed set of keys: keys cannot be deleted.
// BMap also tracks lengths of stored keys to allow longest prefix lookups.
type BMap[T any] struct {
	smap    map[string]T
	lengths []int
}

// New creates bytes map. size is a hint for the number of stored keys.
func New[T any](size int) *BMap[T] {
	return &BMap[T]{
		smap: make(map[string]T, size),
	}
}

// Get returns stored value by key and a flag telling whether this key is stored in the map.
// Returns zero value if the key is not present.
func (m *BMap[T]) Get(key []byte) (T, bool) {
	result, has := m.smap[string(key)]
	return result, has
}

// Set adds or rewrites value for given key.
func (m *BMap[T]) Set(key []byte, value T) {
	skey := string(key)
	if _, has := m.smap[skey]; !has {
		m.addLength(len(key))
	}
	m.smap[skey] = value
}

// Longest returns the longest stored key that is a prefix of content.
// Returns -1 and zero value if no stored key matches.
func (m *BMap[T]) Longest(content []byte) (int, T) {
	for _, l := range m.lengths {
		if l > len(content) {
			continue
		}
		if value, has := m.smap[string(content[:l])]; has {
			return l, value
		}
	}

	var zero T
	return -1, zero
}

// lengths are kept in descending order.
func (m *BMap[T]) addLength(l int) {
	i := 0
	for i < len(m.lengths) && m.lengths[i] > l {
		i++
	}
	if i < len(m.lengths) && m.lengths[i] == l {
		return
	}

	m.lengths = append(m.lengths, 0)
	copy(m.lengths[i+1:], m.lengths[i:])
	m.lengths[i] = l
}
