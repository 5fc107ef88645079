package models

import (
	"time"
)

type Proposal struct {
	ID             uint64    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Submitter      string    `json:"submitter" gorm:"type:text;index"`
	ContentHash    string    `json:"contentHash" gorm:"type:char(64);not null"`
	SubmissionTime int64     `json:"submissionTime" gorm:"not null"`
	TotalScore     int64     `json:"totalScore" gorm:"not null;default:0"`
	ScoreCount     int64     `json:"scoreCount" gorm:"not null;default:0"`
	Status         string    `json:"status" gorm:"type:text;not null;default:'pending'"`
	FinalAverage   int64     `json:"finalAverage" gorm:"not null;default:0"`
	CDate          time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate          time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

type Moderator struct {
	Identity             string    `json:"identity" gorm:"primaryKey;type:text"`
	ID                   uint64    `json:"id" gorm:"uniqueIndex;not null"`
	StakeAmount          uint64    `json:"stakeAmount" gorm:"not null"`
	TotalScoresSubmitted int64     `json:"totalScoresSubmitted" gorm:"not null;default:0"`
	ReputationScore      int64     `json:"reputationScore" gorm:"not null;default:100"`
	IsActive             bool      `json:"isActive" gorm:"not null;default:true"`
	CDate                time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate                time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

type ScoreRecord struct {
	ProposalID    uint64    `json:"proposalID" gorm:"primaryKey;autoIncrement:false"`
	Proposal      Proposal  `json:"-" gorm:"foreignKey:ProposalID;constraint:OnDelete:CASCADE;"`
	Moderator     string    `json:"moderator" gorm:"primaryKey;type:text"`
	Score         int64     `json:"score" gorm:"not null"`
	ScoredAt      int64     `json:"scoredAt" gorm:"not null"`
	ReasoningHash string    `json:"reasoningHash" gorm:"type:char(64);not null"`
	CDate         time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

type ModeratorPerformance struct {
	Identity         string    `json:"identity" gorm:"primaryKey;type:text"`
	AccurateScores   int64     `json:"accurateScores" gorm:"not null;default:0"`
	ChallengedScores int64     `json:"challengedScores" gorm:"not null;default:0"`
	Penalties        int64     `json:"penalties" gorm:"not null;default:0"`
	CDate            time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate            time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// Counter backs the sequential id generators. Rows are locked for update
// inside the transaction that consumes the allocated id.
type Counter struct {
	ID    string `json:"id" gorm:"primaryKey;type:text"`
	Value uint64 `json:"value" gorm:"not null;default:0"`
}
