package engine

import "testing"

func TestStableHash_Deterministic(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		a := StableHash(seed, "goblin")
		b := StableHash(seed, "goblin")
		if a != b {
			t.Fatalf("seed %d: got %d and %d for the same input", seed, a, b)
		}
	}
}

func TestStableHash_KeySensitive(t *testing.T) {
	if StableHash(7, "goblin") == StableHash(7, "troll") {
		t.Error("different keys should hash differently")
	}
	if StableHash(7, "goblin") == StableHash(8, "goblin") {
		t.Error("different seeds should hash differently")
	}
}

func TestRollPercent_Range(t *testing.T) {
	for seed := uint64(0); seed < 1000; seed++ {
		if r := RollPercent(seed, "cat"); r >= 100 {
			t.Fatalf("roll out of range [0,100): got %d", r)
		}
	}
}

func TestIndex_Range(t *testing.T) {
	for seed := uint64(0); seed < 1000; seed++ {
		if i := Index(seed, "cat", 3); i < 0 || i >= 3 {
			t.Fatalf("index out of range [0,3): got %d", i)
		}
	}
	if i := Index(5, "cat", 0); i != 0 {
		t.Errorf("Index with n=0 = %d, want 0", i)
	}
}

func TestIndex_UsesSaltedSeed(t *testing.T) {
	n := 1 << 30
	if got, want := Index(3, "cat", n), int(StableHash(3+indexSalt, "cat")%uint64(n)); got != want {
		t.Errorf("Index = %d, want %d", got, want)
	}
}

func TestChanceHits_Bounds(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		if chanceHits(seed, "cat", 0) {
			t.Fatal("chance 0 must never hit")
		}
		if !chanceHits(seed, "cat", 100) {
			t.Fatal("chance 100 must always hit")
		}
	}
}
