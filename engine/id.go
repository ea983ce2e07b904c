// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"

	"github.com/kestrelgfx/forge/internal/bitvec"
)

// dataID identifies a dataMap.data element.
type dataID struct {
	data int
}

// dataEntry is what a dataMap stores.
type dataEntry[T any] struct {
	data T
	id   int
}

// dataMap stores data of type D with identifiers
// of type I. Identifiers are stable: removing an
// entry never invalidates the identifiers of the
// remaining ones.
type dataMap[I ~int, D any] struct {
	ids   []dataID
	idMap bitvec.V[uint32]
	data  []dataEntry[D]
}

var errInvalidID = errors.New("engine: invalid identifier")

// insert stores data and returns its identifier.
func (m *dataMap[I, D]) insert(data D) I {
	id, ok := m.idMap.Search()
	if !ok {
		id = m.idMap.Grow(1)
		m.ids = append(m.ids, make([]dataID, m.idMap.Len()-len(m.ids))...)
	}
	m.idMap.Set(id)
	m.ids[id] = dataID{data: len(m.data)}
	m.data = append(m.data, dataEntry[D]{data: data, id: id})
	return I(id)
}

// remove deletes id's entry, returning its data.
// The last element takes the vacated data slot so
// the backing slice stays dense.
func (m *dataMap[I, D]) remove(id I) (data D, err error) {
	if !m.contains(id) {
		err = errInvalidID
		return
	}
	idx := m.ids[id].data
	data = m.data[idx].data
	last := len(m.data) - 1
	if idx != last {
		m.data[idx] = m.data[last]
		m.ids[m.data[idx].id] = dataID{data: idx}
	}
	m.data = m.data[:last]
	m.idMap.Unset(int(id))
	return
}

// get returns a pointer to id's data, valid until
// the next insert/remove.
func (m *dataMap[I, D]) get(id I) (*D, error) {
	if !m.contains(id) {
		return nil, errInvalidID
	}
	return &m.data[m.ids[id].data].data, nil
}

// contains reports whether id identifies a stored entry.
func (m *dataMap[I, D]) contains(id I) bool {
	return id >= 0 && int(id) < m.idMap.Len() && m.idMap.IsSet(int(id))
}

// len returns the number of stored entries.
func (m *dataMap[I, D]) len() int { return len(m.data) }

// each calls fn for every stored entry until fn
// returns false.
func (m *dataMap[I, D]) each(fn func(id I, data *D) bool) {
	for i := range m.data {
		if !fn(I(m.data[i].id), &m.data[i].data) {
			return
		}
	}
}
