package domain

const (
	RequesterIdCtxKey   = "mg-requesterId"
	RequesterTypeCtxKey = "mg-requesterType"
)

const (
	RequesterIdHeader   = "mg-requester-id"
	RequesterTypeHeader = "mg-requester-type"
)

const (
	// DefaultMinStake is the minimum stake in base units required to register.
	DefaultMinStake uint64 = 1_000_000_000
	// DefaultValidityPeriod is how many blocks a proposal stays scorable
	// (about one week at a 10 minute block interval).
	DefaultValidityPeriod int64 = 1008
	// DefaultMinScores is the quorum required before finalization.
	DefaultMinScores int64 = 3
	// DefaultScoreThreshold is the minimum average for approval.
	DefaultScoreThreshold int64 = 70
)

const (
	ScoreMin int64 = 0
	ScoreMax int64 = 100
)

const (
	Unknown = iota
	LocalModerator
	RemoteService
)

func RequesterTypeString(t int) string {
	switch t {
	case LocalModerator:
		return "LocalModerator"
	case RemoteService:
		return "RemoteService"
	case Unknown:
		return "Unknown"
	default:
		return "Error"
	}
}
