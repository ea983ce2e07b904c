// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package engine

import "testing"

func TestDataMap(t *testing.T) {
	var m dataMap[int, string]

	a := m.insert("a")
	b := m.insert("b")
	c := m.insert("c")
	if m.len() != 3 {
		t.Fatalf("len: have %d, want 3", m.len())
	}
	for id, want := range map[int]string{a: "a", b: "b", c: "c"} {
		p, err := m.get(id)
		if err != nil || *p != want {
			t.Fatalf("get(%d): have %v, %v", id, p, err)
		}
	}

	// Removing the middle entry must not invalidate the others.
	data, err := m.remove(b)
	if err != nil || data != "b" {
		t.Fatalf("remove: have %q, %v", data, err)
	}
	if m.len() != 2 {
		t.Fatalf("len after remove: have %d, want 2", m.len())
	}
	for id, want := range map[int]string{a: "a", c: "c"} {
		p, err := m.get(id)
		if err != nil || *p != want {
			t.Fatalf("get(%d) after remove: have %v, %v", id, p, err)
		}
	}
	if _, err := m.get(b); err == nil {
		t.Fatal("get of removed identifier succeeded")
	}
	if _, err := m.remove(b); err == nil {
		t.Fatal("double remove succeeded")
	}

	// Freed identifiers are reused.
	d := m.insert("d")
	if d != b {
		t.Fatalf("insert after remove: have id %d, want reused %d", d, b)
	}

	var n int
	m.each(func(id int, s *string) bool { n++; return true })
	if n != 3 {
		t.Fatalf("each visited %d entries, want 3", n)
	}
}
