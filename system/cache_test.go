// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package system

import "testing"

func TestRefcacheAcquireLoadsOnceThenIncrements(t *testing.T) {
	c := newRefcache[int]()
	loads := 0
	load := func() (int, error) {
		loads++
		return 42, nil
	}
	v, err := c.acquire("a", true, load)
	if err != nil || v != 42 {
		t.Fatalf("acquire = %d, %v", v, err)
	}
	v, err = c.acquire("a", true, load)
	if err != nil || v != 42 {
		t.Fatalf("second acquire = %d, %v", v, err)
	}
	if loads != 1 {
		t.Fatalf("load called %d times, want 1", loads)
	}
	if c.refCount("a") != 2 {
		t.Fatalf("refCount = %d, want 2", c.refCount("a"))
	}
}

func TestRefcacheReleaseDestroysOnlyAtZeroWithAutoRelease(t *testing.T) {
	c := newRefcache[int]()
	c.acquire("a", true, func() (int, error) { return 1, nil })
	c.acquire("a", true, func() (int, error) { return 1, nil })

	if _, destroy := c.release("a"); destroy {
		t.Fatal("release with refs remaining reported destroy")
	}
	if c.refCount("a") != 1 {
		t.Fatalf("refCount = %d, want 1", c.refCount("a"))
	}
	v, destroy := c.release("a")
	if !destroy || v != 1 {
		t.Fatalf("final release = %d, %v, want 1, true", v, destroy)
	}
	if c.refCount("a") != 0 {
		t.Fatalf("refCount after destroy = %d, want 0", c.refCount("a"))
	}
}

func TestRefcacheReleaseWithoutAutoReleaseNeverDestroys(t *testing.T) {
	c := newRefcache[int]()
	c.insert("default", 7, false)
	if _, destroy := c.release("default"); destroy {
		t.Fatal("release of a non-auto-release entry reported destroy")
	}
	// A built-in default stays cached at refs=0 rather than being evicted.
	if _, destroy := c.release("default"); destroy {
		t.Fatal("releasing an already-zero entry reported destroy")
	}
}

func TestRefcacheReleaseAbsentNameIsNoop(t *testing.T) {
	c := newRefcache[int]()
	if v, destroy := c.release("missing"); destroy || v != 0 {
		t.Fatalf("release of absent name = %d, %v, want 0, false", v, destroy)
	}
}

func TestRefcacheLoadErrorLeavesNothingCached(t *testing.T) {
	c := newRefcache[int]()
	wantErr := errTest("boom")
	_, err := c.acquire("a", true, func() (int, error) { return 0, wantErr })
	if err != wantErr {
		t.Fatalf("acquire err = %v, want %v", err, wantErr)
	}
	if c.refCount("a") != 0 {
		t.Fatalf("refCount after failed load = %d, want 0", c.refCount("a"))
	}
}

func TestValidName(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"", false},
		{"ok", true},
		{string(make([]byte, maxNameLen)), true},
		{string(make([]byte, maxNameLen+1)), false},
	}
	for _, c := range cases {
		if got := validName(c.name); got != c.want {
			t.Errorf("validName(len=%d) = %v, want %v", len(c.name), got, c.want)
		}
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
