package ratelimit

import "testing"

func TestAllowDrainsBucket(t *testing.T) {
	l := New()

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4", 3, 0) {
			t.Fatalf("request %d should pass within capacity", i+1)
		}
	}
	if l.Allow("1.2.3.4", 3, 0) {
		t.Error("request over capacity should be rejected")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()

	if !l.Allow("a", 1, 0) {
		t.Fatal("first request for key a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Error("key a is drained")
	}
	if !l.Allow("b", 1, 0) {
		t.Error("key b has its own bucket")
	}
}
