package domain

import "testing"

func TestAverageTruncates(t *testing.T) {
	// 70 + 70 + 69 = 209, integer mean truncates to 69
	if got := Average(209, 3); got != 69 {
		t.Fatalf("expected 69 got %d", got)
	}
	if got := Average(240, 3); got != 80 {
		t.Fatalf("expected 80 got %d", got)
	}
	if got := Average(0, 0); got != 0 {
		t.Fatalf("expected 0 for empty aggregate got %d", got)
	}
}

func TestDecide(t *testing.T) {
	if Decide(69, DefaultScoreThreshold) != StatusRejected {
		t.Fatalf("69 should reject")
	}
	if Decide(70, DefaultScoreThreshold) != StatusApproved {
		t.Fatalf("70 should approve")
	}
}

func TestIsExpired(t *testing.T) {
	p := Proposal{SubmissionTime: 100}

	if p.IsExpired(100+DefaultValidityPeriod, DefaultValidityPeriod) {
		t.Fatalf("boundary height should not be expired")
	}
	if !p.IsExpired(100+DefaultValidityPeriod+1, DefaultValidityPeriod) {
		t.Fatalf("one past the boundary should be expired")
	}
}

func TestValidScore(t *testing.T) {
	for _, v := range []int64{0, 1, 50, 100} {
		if !ValidScore(v) {
			t.Fatalf("%d should be valid", v)
		}
	}
	for _, v := range []int64{-1, 101, 1000} {
		if ValidScore(v) {
			t.Fatalf("%d should be invalid", v)
		}
	}
}
