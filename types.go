package modgate

const (
	EventScoreRecorded     = "gate.score.recorded"
	EventProposalFinalized = "gate.proposal.finalized"
)

// Event is the realtime notification emitted after a gate mutation commits.
// Events are advisory; the ledger tables remain the source of truth.
type Event struct {
	Type       string `json:"type"`
	ProposalID uint64 `json:"proposalID"`
	Moderator  string `json:"moderator,omitempty"`
	Score      *int64 `json:"score,omitempty"`
	Status     string `json:"status,omitempty"`
	Average    *int64 `json:"average,omitempty"`
	Height     int64  `json:"height"`
}

// Wire shapes of the public REST surface, for remote node consumers.
type Proposal struct {
	ID             uint64 `json:"id"`
	Submitter      string `json:"submitter"`
	ContentHash    string `json:"contentHash"`
	SubmissionTime int64  `json:"submissionTime"`
	TotalScore     int64  `json:"totalScore"`
	ScoreCount     int64  `json:"scoreCount"`
	Status         string `json:"status"`
	FinalAverage   int64  `json:"finalAverage"`
}

type Moderator struct {
	ID                   uint64 `json:"id"`
	Identity             string `json:"identity"`
	StakeAmount          uint64 `json:"stakeAmount"`
	TotalScoresSubmitted int64  `json:"totalScoresSubmitted"`
	ReputationScore      int64  `json:"reputationScore"`
	IsActive             bool   `json:"isActive"`
}

type ScoreRecord struct {
	ProposalID    uint64 `json:"proposalID"`
	Moderator     string `json:"moderator"`
	Score         int64  `json:"score"`
	ScoredAt      int64  `json:"scoredAt"`
	ReasoningHash string `json:"reasoningHash"`
}

type ModgateEndpoint struct {
	Template string    `json:"template"`
	Method   string    `json:"method"`
	Query    *[]string `json:"query,omitempty"`
}

// WellKnownModgate is served at /.well-known/modgate and describes this node.
type WellKnownModgate struct {
	Version   string                     `json:"version"`
	Domain    string                     `json:"domain"`
	GSID      string                     `json:"gsid"`
	Endpoints map[string]ModgateEndpoint `json:"endpoints"`
}
