package session

import "testing"

func TestSyncedYears(t *testing.T) {
	s := NewSyncedYears()

	if !s.ShouldSync(2024) {
		t.Error("fresh tracker should want a sync")
	}

	s.MarkSynced(2024)
	if s.ShouldSync(2024) {
		t.Error("marked year still reported as needing a sync")
	}
	if !s.ShouldSync(2023) {
		t.Error("marking one year affected another")
	}

	s.MarkSynced(2024) // absorbed
	if s.ShouldSync(2024) {
		t.Error("duplicate mark flipped the year back")
	}
}
