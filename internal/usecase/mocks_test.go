package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/peergov/modgate"
	"github.com/peergov/modgate/internal/domain"
)

// --- mocks ---

// mockStore is an in-memory stand-in for the gorm repositories. It mirrors
// their contract: sequential ids, duplicate detection, aggregate updates.
type mockStore struct {
	proposals    map[uint64]domain.Proposal
	moderators   map[string]domain.Moderator
	performances map[string]domain.ModeratorPerformance
	scores       map[string]domain.ScoreRecord

	proposalSeq  uint64
	moderatorSeq uint64
}

func newMockStore() *mockStore {
	return &mockStore{
		proposals:    make(map[uint64]domain.Proposal),
		moderators:   make(map[string]domain.Moderator),
		performances: make(map[string]domain.ModeratorPerformance),
		scores:       make(map[string]domain.ScoreRecord),
	}
}

func scoreKey(proposalID uint64, identity string) string {
	return fmt.Sprintf("%d/%s", proposalID, identity)
}

func (s *mockStore) Register(ctx context.Context, moderator domain.Moderator) (domain.Moderator, error) {
	if _, ok := s.moderators[moderator.Identity]; ok {
		return domain.Moderator{}, domain.ErrAlreadyRegistered
	}
	s.moderatorSeq++
	moderator.ID = s.moderatorSeq
	s.moderators[moderator.Identity] = moderator
	s.performances[moderator.Identity] = domain.ModeratorPerformance{Identity: moderator.Identity}
	return moderator, nil
}

func (s *mockStore) Get(ctx context.Context, identity string) (domain.Moderator, error) {
	moderator, ok := s.moderators[identity]
	if !ok {
		return domain.Moderator{}, domain.ErrNotModerator
	}
	return moderator, nil
}

func (s *mockStore) ListModerators(ctx context.Context) ([]domain.Moderator, error) {
	moderators := make([]domain.Moderator, 0, len(s.moderators))
	for _, moderator := range s.moderators {
		moderators = append(moderators, moderator)
	}
	sort.Slice(moderators, func(i, j int) bool { return moderators[i].ID < moderators[j].ID })
	return moderators, nil
}

func (s *mockStore) GetPerformance(ctx context.Context, identity string) (domain.ModeratorPerformance, error) {
	performance, ok := s.performances[identity]
	if !ok {
		return domain.ModeratorPerformance{}, domain.ErrNotModerator
	}
	return performance, nil
}

func (s *mockStore) Create(ctx context.Context, proposal domain.Proposal) (domain.Proposal, error) {
	s.proposalSeq++
	proposal.ID = s.proposalSeq
	s.proposals[proposal.ID] = proposal
	return proposal, nil
}

func (s *mockStore) GetProposal(ctx context.Context, id uint64) (domain.Proposal, error) {
	proposal, ok := s.proposals[id]
	if !ok {
		return domain.Proposal{}, domain.ErrProposalNotFound
	}
	return proposal, nil
}

func (s *mockStore) Finalize(ctx context.Context, id uint64, status domain.ProposalStatus, average int64) (domain.Proposal, error) {
	proposal, ok := s.proposals[id]
	if !ok {
		return domain.Proposal{}, domain.ErrProposalNotFound
	}
	proposal.Status = status
	proposal.FinalAverage = average
	s.proposals[id] = proposal
	return proposal, nil
}

func (s *mockStore) Record(ctx context.Context, record domain.ScoreRecord) error {
	key := scoreKey(record.ProposalID, record.Moderator)
	if _, ok := s.scores[key]; ok {
		return domain.ErrAlreadyScored
	}
	proposal, ok := s.proposals[record.ProposalID]
	if !ok {
		return domain.ErrProposalNotFound
	}
	moderator, ok := s.moderators[record.Moderator]
	if !ok {
		return domain.ErrNotModerator
	}

	s.scores[key] = record
	proposal.TotalScore += record.Score
	proposal.ScoreCount++
	s.proposals[record.ProposalID] = proposal
	moderator.TotalScoresSubmitted++
	s.moderators[record.Moderator] = moderator
	return nil
}

func (s *mockStore) GetScore(ctx context.Context, proposalID uint64, identity string) (domain.ScoreRecord, error) {
	record, ok := s.scores[scoreKey(proposalID, identity)]
	if !ok {
		return domain.ScoreRecord{}, domain.NotFoundError{Resource: "score record"}
	}
	return record, nil
}

func (s *mockStore) List(ctx context.Context, proposalID uint64) ([]domain.ScoreRecord, error) {
	records := make([]domain.ScoreRecord, 0)
	for _, record := range s.scores {
		if record.ProposalID == proposalID {
			records = append(records, record)
		}
	}
	return records, nil
}

// scoreRepoView adapts mockStore to the ScoreRepository method names.
type scoreRepoView struct{ *mockStore }

func (v scoreRepoView) Get(ctx context.Context, proposalID uint64, identity string) (domain.ScoreRecord, error) {
	return v.GetScore(ctx, proposalID, identity)
}

// moderatorRepoView adapts mockStore to the ModeratorRepository method names.
type moderatorRepoView struct{ *mockStore }

func (v moderatorRepoView) List(ctx context.Context) ([]domain.Moderator, error) {
	return v.ListModerators(ctx)
}

// proposalRepoView adapts mockStore to the ProposalRepository method names.
type proposalRepoView struct{ *mockStore }

func (v proposalRepoView) Get(ctx context.Context, id uint64) (domain.Proposal, error) {
	return v.GetProposal(ctx, id)
}

type fixedClock struct {
	height int64
}

func (c *fixedClock) Now(ctx context.Context) (int64, error) {
	return c.height, nil
}

type eventRecorder struct {
	events []modgate.Event
}

func (r *eventRecorder) Publish(ctx context.Context, event modgate.Event) error {
	r.events = append(r.events, event)
	return nil
}

// --- fixtures ---

const (
	modAlice = "gov1aliceaddraliceaddraliceaddraliceadd"
	modBob   = "gov1bobaddrbobaddrbobaddrbobaddrbobaddr"
	modCarol = "gov1caroladdrcaroladdrcaroladdrcaroladd"
)

type fixture struct {
	store    *mockStore
	clock    *fixedClock
	events   *eventRecorder
	rules    domain.Rules
	registry *RegistryUsecase
	proposal *ProposalUsecase
	scoring  *ScoringUsecase
	decision *DecisionUsecase
}

func newFixture() *fixture {
	store := newMockStore()
	clock := &fixedClock{height: 1000}
	events := &eventRecorder{}
	rules := domain.Rules{}.WithDefaults()

	return &fixture{
		store:    store,
		clock:    clock,
		events:   events,
		rules:    rules,
		registry: NewRegistryUsecase(moderatorRepoView{store}, rules),
		proposal: NewProposalUsecase(proposalRepoView{store}, clock),
		scoring:  NewScoringUsecase(proposalRepoView{store}, moderatorRepoView{store}, scoreRepoView{store}, clock, events, rules),
		decision: NewDecisionUsecase(proposalRepoView{store}, clock, events, rules),
	}
}

func (f *fixture) registerAll(identities ...string) error {
	for _, identity := range identities {
		if _, err := f.registry.Register(context.Background(), identity, f.rules.MinStake); err != nil {
			return err
		}
	}
	return nil
}
