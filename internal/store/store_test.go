package store

import "testing"

func TestObjectKeys(t *testing.T) {
	if got := gamelogKey(42); got != "gamelogs/42.gamelog" {
		t.Fatalf("gamelog key: %q", got)
	}
	if got := videoKey(42, 3); got != "renders/42_3.mp4" {
		t.Fatalf("video key: %q", got)
	}
}
