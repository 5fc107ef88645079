package domain

// Config is the runtime node configuration shared across layers.
type Config struct {
	FQDN       string `yaml:"fqdn"`
	PrivateKey string `yaml:"privatekey"`
	GSID       string `yaml:"gsid"`
	Rules      Rules  `yaml:"rules"`
}

// Rules are the gate constants. Zero values are replaced with the
// protocol defaults at config load time.
type Rules struct {
	MinStake       uint64 `yaml:"minStake"`
	ValidityPeriod int64  `yaml:"validityPeriod"`
	MinScores      int64  `yaml:"minScores"`
	ScoreThreshold int64  `yaml:"scoreThreshold"`
}

func (r Rules) WithDefaults() Rules {
	if r.MinStake == 0 {
		r.MinStake = DefaultMinStake
	}
	if r.ValidityPeriod == 0 {
		r.ValidityPeriod = DefaultValidityPeriod
	}
	if r.MinScores == 0 {
		r.MinScores = DefaultMinScores
	}
	if r.ScoreThreshold == 0 {
		r.ScoreThreshold = DefaultScoreThreshold
	}
	return r
}
