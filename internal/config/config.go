package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/saeidalz13/battleship-ai/internal/ai"
	cerr "github.com/saeidalz13/battleship-ai/internal/error"
)

const (
	StageDev  = "dev"
	StageProd = "prod"
)

const (
	defaultPort     = 8080
	defaultLogLevel = "info"
)

type Config struct {
	Stage       string
	Port        int
	DatabaseURL string
	LogLevel    log.Level
	Placement   ai.PlacementBudget
	Targeting   ai.TargetingBudget
}

// Load reads .env (outside prod) and then the process environment. A
// missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	stage := getenv("STAGE")
	if stage == "" {
		stage = StageDev
	}
	if stage != StageDev && stage != StageProd {
		return nil, cerr.ErrInvalidStage(stage)
	}

	port, err := intEnv(getenv, "PORT", defaultPort)
	if err != nil {
		return nil, err
	}

	levelEnv := getenv("LOG_LEVEL")
	if levelEnv == "" {
		levelEnv = defaultLogLevel
	}
	level, err := log.ParseLevel(levelEnv)
	if err != nil {
		return nil, err
	}

	placement := ai.DefaultPlacementBudget()
	soft, err := intEnv(getenv, "PLACEMENT_SOFT_MS", int(placement.SparseUntil.Milliseconds()))
	if err != nil {
		return nil, err
	}
	dense, err := intEnv(getenv, "PLACEMENT_DENSE_MS", int(placement.DenseAfter.Milliseconds()))
	if err != nil {
		return nil, err
	}
	hard, err := intEnv(getenv, "PLACEMENT_HARD_MS", int(placement.HardDeadline.Milliseconds()))
	if err != nil {
		return nil, err
	}
	if soft < 0 || soft > dense || dense > hard {
		return nil, cerr.ErrInvalidBudget(soft, dense, hard)
	}
	placement.SparseUntil = time.Duration(soft) * time.Millisecond
	placement.DenseAfter = time.Duration(dense) * time.Millisecond
	placement.HardDeadline = time.Duration(hard) * time.Millisecond

	targeting := ai.DefaultTargetingBudget()
	sampleMs, err := intEnv(getenv, "SEARCH_BUDGET_MS", int(targeting.SampleBudget.Milliseconds()))
	if err != nil {
		return nil, err
	}
	targeting.SampleBudget = time.Duration(sampleMs) * time.Millisecond

	return &Config{
		Stage:       stage,
		Port:        port,
		DatabaseURL: getenv("DATABASE_URL"),
		LogLevel:    level,
		Placement:   placement,
		Targeting:   targeting,
	}, nil
}

func intEnv(getenv func(string) string, key string, def int) (int, error) {
	value := getenv(key)
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, cerr.ErrEnvNotInt(key, value)
	}
	return n, nil
}

// SetupLogger points the package-level logger at w with the configured
// level. Timestamps are only reported in prod.
func (c *Config) SetupLogger(w io.Writer) {
	log.SetOutput(w)
	log.SetLevel(c.LogLevel)
	log.SetReportTimestamp(c.Stage == StageProd)
}
