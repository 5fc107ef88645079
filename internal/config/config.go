package config

import (
	"os"

	"github.com/go-yaml/yaml"

	"github.com/peergov/modgate"
	"github.com/peergov/modgate/internal/domain"
)

type Config struct {
	NodeInfo NodeInfo     `yaml:"nodeInfo"`
	Server   Server       `yaml:"server"`
	Rules    domain.Rules `yaml:"rules"`
}

type NodeInfo struct {
	FQDN       string `yaml:"fqdn"`
	PrivateKey string `yaml:"privatekey"`

	// ---
	GSID string
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	gsid, err := modgate.PrivKeyToAddr(config.NodeInfo.PrivateKey, modgate.AddrHRPService)
	if err != nil {
		return Config{}, err
	}

	config.NodeInfo.GSID = gsid
	config.Rules = config.Rules.WithDefaults()

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}

	return config, nil
}

// Domain converts the file config into the runtime view shared across layers.
func (c Config) Domain() domain.Config {
	return domain.Config{
		FQDN:       c.NodeInfo.FQDN,
		PrivateKey: c.NodeInfo.PrivateKey,
		GSID:       c.NodeInfo.GSID,
		Rules:      c.Rules,
	}
}
