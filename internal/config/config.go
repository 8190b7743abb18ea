package config

import (
	"github.com/caarlos0/env"
	"go.uber.org/zap"

	customError "game-backend/pkg/errors"
)

// Env variable names match the original CloudFormation template parameters so
// the same stack configuration works unchanged.
const (
	EnvTicketTable       = "MatchmakingRequestTableName"
	EnvPlacementTable    = "GameSessionPlacementTableName"
	EnvTicketIdIndex     = "TicketIdIndexName"
	EnvMatchmakingConfig = "MatchmakingConfigurationName"
	EnvTeamName          = "TeamName"
	EnvTicketQueueUrl    = "SimpleMatchMakerTicketQueueUrl"
	EnvSessionQueueName  = "GameSessionQueueName"
	EnvPlayersPerGame    = "NumPlayersPerGame"
	EnvGameName          = "GameName"
)

type Config struct {
	Logger *zap.Logger

	TicketTableName    string `env:"MatchmakingRequestTableName"`
	PlacementTableName string `env:"GameSessionPlacementTableName"`
	TicketIdIndexName  string `env:"TicketIdIndexName"`

	MatchmakingConfigurationName string `env:"MatchmakingConfigurationName"`
	TeamName                     string `env:"TeamName"`

	TicketQueueUrl   string `env:"SimpleMatchMakerTicketQueueUrl"`
	SessionQueueName string `env:"GameSessionQueueName"`
	PlayersPerGame   int    `env:"NumPlayersPerGame" envDefault:"2"`

	GameName string `env:"GameName"`

	// Lifecycle tuning
	TicketTtlSeconds  int64 `env:"TicketTtlInSeconds" envDefault:"600"`
	MinElapsedSeconds int64 `env:"MinTimeElapsedBeforeUpdateInSeconds" envDefault:"30"`
	DescribeBatchSize int   `env:"DescribeMatchmakingBatchSize" envDefault:"10"`
	PollScanLimit     int64 `env:"NonTerminalRequestQueryLimit" envDefault:"50"`
}

func New() (*Config, error) {
	cfg := &Config{
		Logger: NewLogger(),
	}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func NewLogger() *zap.Logger {
	logCfg := zap.NewProductionConfig()
	logCfg.DisableStacktrace = true
	logger, _ := logCfg.Build()
	return logger
}

// Require validates that every named env-backed value is set. Each handler
// declares only the values it actually reads.
func Require(envMap map[string]string) error {
	for _, val := range envMap {
		if val == "" {
			return customError.MissingEnvErr{EnvMap: envMap}
		}
	}
	return nil
}
