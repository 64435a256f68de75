package ratelimit

import "testing"

func TestAllowStopsAtLimit(t *testing.T) {
	l := New(3)
	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("request %d denied inside budget", i+1)
		}
	}
	if l.Allow() {
		t.Error("request allowed past the daily limit")
	}
	if l.Used() != 3 {
		t.Errorf("Used() = %d, want 3", l.Used())
	}
}

func TestZeroLimitDisables(t *testing.T) {
	l := New(0)
	for i := 0; i < 100; i++ {
		if !l.Allow() {
			t.Fatal("disabled limiter denied a request")
		}
	}
}
