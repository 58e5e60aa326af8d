package model

import (
	"encoding/hex"
	"fmt"
)

// MapEntry is one key/value pair of a Map, exposed in insertion order.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an insertion-ordered mapping from Key to Value. It is a
// linked-hash structure: an ordered slice of entries plus a hash index from
// a canonical key encoding to slice position, rather than a plain Go map
// (which does not preserve iteration order).
type Map struct {
	KType   string
	VType   string
	Comment string

	entries []MapEntry
	index   map[string]int
}

// NewMap creates an empty Map with the given optional ktype/vtype.
func NewMap(ktype, vtype string) *Map {
	return &Map{KType: ktype, VType: vtype, index: make(map[string]int)}
}

// keyString returns a canonical, collision-free string encoding for a Key
// value, used as the linked-hash index. Only Key kinds (Int, Date,
// DateTime, Str, Bytes) are ever passed here; callers validate Kind.IsKey
// before calling Set/Get.
func keyString(v Value) string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("i:%d", v.i)
	case KindDate:
		return "d:" + v.date.String()
	case KindDateTime:
		return "t:" + v.dt.String()
	case KindStr:
		return "s:" + v.s
	case KindBytes:
		return "b:" + hex.EncodeToString(v.by)
	default:
		return fmt.Sprintf("?:%v", v)
	}
}

// Set inserts or updates key->val. If key already exists its value is
// replaced in place, preserving its original position (last-write-wins on
// duplicate map keys). It reports whether the key was already present, so
// callers can surface a duplicate-key warning.
func (m *Map) Set(key, val Value) (existed bool) {
	ks := keyString(key)
	if i, ok := m.index[ks]; ok {
		m.entries[i].Value = val
		return true
	}
	m.index[ks] = len(m.entries)
	m.entries = append(m.entries, MapEntry{Key: key, Value: val})
	return false
}

// Get looks up a key.
func (m *Map) Get(key Value) (Value, bool) {
	if i, ok := m.index[keyString(key)]; ok {
		return m.entries[i].Value, true
	}
	return Value{}, false
}

// Delete removes a key, reports whether it was present, and preserves the
// order and index correctness of remaining entries.
func (m *Map) Delete(key Value) bool {
	ks := keyString(key)
	i, ok := m.index[ks]
	if !ok {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, ks)
	for k, idx := range m.index {
		if idx > i {
			m.index[k] = idx - 1
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Entries returns the map's entries in insertion order. The returned slice
// aliases internal storage and must not be mutated directly.
func (m *Map) Entries() []MapEntry { return m.entries }

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []Value {
	keys := make([]Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Equal reports whether two maps share ktype, vtype, and the same
// key/value pairs in the same order.
func (m *Map) Equal(o *Map) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.KType != o.KType || m.VType != o.VType || len(m.entries) != len(o.entries) {
		return false
	}
	for i := range m.entries {
		if !m.entries[i].Key.Equal(o.entries[i].Key) || !m.entries[i].Value.Equal(o.entries[i].Value) {
			return false
		}
	}
	return true
}
