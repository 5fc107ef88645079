package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/peergov/modgate"
	"github.com/peergov/modgate/internal/domain"
)

func TestScoreHappyPath(t *testing.T) {
	f := newFixture()
	if err := f.registerAll(modAlice); err != nil {
		t.Fatalf("setup: %v", err)
	}
	proposal, _ := f.proposal.Submit(context.Background(), modBob, testContentHash)
	f.clock.height = proposal.SubmissionTime + 5

	record, err := f.scoring.Score(context.Background(), proposal.ID, modAlice, 85, testContentHash)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if record.ScoredAt != f.clock.height {
		t.Fatalf("expected scoredAt %d got %d", f.clock.height, record.ScoredAt)
	}

	updated, _ := f.proposal.Get(context.Background(), proposal.ID)
	if updated.TotalScore != 85 || updated.ScoreCount != 1 {
		t.Fatalf("aggregates not advanced: %+v", updated)
	}

	moderator, _ := f.registry.Get(context.Background(), modAlice)
	if moderator.TotalScoresSubmitted != 1 {
		t.Fatalf("moderator counter not advanced: %+v", moderator)
	}

	if len(f.events.events) != 1 || f.events.events[0].Type != modgate.EventScoreRecorded {
		t.Fatalf("expected one score event, got %+v", f.events.events)
	}
}

func TestScorePreconditionOrder(t *testing.T) {
	f := newFixture()

	// unknown proposal wins over every later check, even an invalid value
	_, err := f.scoring.Score(context.Background(), 42, modAlice, 500, testContentHash)
	if !errors.Is(err, domain.ErrProposalNotFound) {
		t.Fatalf("expected ErrProposalNotFound got %v", err)
	}

	proposal, _ := f.proposal.Submit(context.Background(), modBob, testContentHash)

	// unregistered caller is reported before the range check
	_, err = f.scoring.Score(context.Background(), proposal.ID, modAlice, 500, testContentHash)
	if !errors.Is(err, domain.ErrNotModerator) {
		t.Fatalf("expected ErrNotModerator got %v", err)
	}
}

func TestScoreInactiveModerator(t *testing.T) {
	f := newFixture()
	if err := f.registerAll(modAlice); err != nil {
		t.Fatalf("setup: %v", err)
	}
	moderator := f.store.moderators[modAlice]
	moderator.IsActive = false
	f.store.moderators[modAlice] = moderator

	proposal, _ := f.proposal.Submit(context.Background(), modBob, testContentHash)

	_, err := f.scoring.Score(context.Background(), proposal.ID, modAlice, 50, testContentHash)
	if !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized got %v", err)
	}
}

func TestScoreRange(t *testing.T) {
	f := newFixture()
	if err := f.registerAll(modAlice); err != nil {
		t.Fatalf("setup: %v", err)
	}
	proposal, _ := f.proposal.Submit(context.Background(), modBob, testContentHash)

	for _, value := range []int64{-1, 101} {
		_, err := f.scoring.Score(context.Background(), proposal.ID, modAlice, value, testContentHash)
		if !errors.Is(err, domain.ErrInvalidScore) {
			t.Fatalf("value %d: expected ErrInvalidScore got %v", value, err)
		}
	}

	// boundary values are accepted
	if _, err := f.scoring.Score(context.Background(), proposal.ID, modAlice, 0, testContentHash); err != nil {
		t.Fatalf("score 0 rejected: %v", err)
	}
}

func TestScoreExpiredProposal(t *testing.T) {
	f := newFixture()
	if err := f.registerAll(modAlice); err != nil {
		t.Fatalf("setup: %v", err)
	}
	proposal, _ := f.proposal.Submit(context.Background(), modBob, testContentHash)
	f.clock.height = proposal.SubmissionTime + f.rules.ValidityPeriod + 1

	_, err := f.scoring.Score(context.Background(), proposal.ID, modAlice, 50, testContentHash)
	if !errors.Is(err, domain.ErrProposalExpired) {
		t.Fatalf("expected ErrProposalExpired got %v", err)
	}
}

func TestScoreDuplicatePair(t *testing.T) {
	f := newFixture()
	if err := f.registerAll(modAlice); err != nil {
		t.Fatalf("setup: %v", err)
	}
	proposal, _ := f.proposal.Submit(context.Background(), modBob, testContentHash)

	if _, err := f.scoring.Score(context.Background(), proposal.ID, modAlice, 60, testContentHash); err != nil {
		t.Fatalf("first score failed: %v", err)
	}
	_, err := f.scoring.Score(context.Background(), proposal.ID, modAlice, 90, testContentHash)
	if !errors.Is(err, domain.ErrAlreadyScored) {
		t.Fatalf("expected ErrAlreadyScored got %v", err)
	}

	// the rejected duplicate must not touch the aggregates
	updated, _ := f.proposal.Get(context.Background(), proposal.ID)
	if updated.TotalScore != 60 || updated.ScoreCount != 1 {
		t.Fatalf("aggregates changed by rejected duplicate: %+v", updated)
	}
}

func TestScoreAfterFinalizeStillAccepted(t *testing.T) {
	f := newFixture()
	if err := f.registerAll(modAlice, modBob, modCarol); err != nil {
		t.Fatalf("setup: %v", err)
	}
	proposal, _ := f.proposal.Submit(context.Background(), "gov1submitter", testContentHash)

	for _, identity := range []string{modAlice, modBob, modCarol} {
		if _, err := f.scoring.Score(context.Background(), proposal.ID, identity, 80, testContentHash); err != nil {
			t.Fatalf("score failed: %v", err)
		}
	}
	if _, err := f.decision.Finalize(context.Background(), proposal.ID); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	// the ledger keeps accepting scores for a finalized proposal until expiry
	extra := "gov1dave"
	if err := f.registerAll(extra); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := f.scoring.Score(context.Background(), proposal.ID, extra, 10, testContentHash); err != nil {
		t.Fatalf("post-finalize score rejected: %v", err)
	}
}
