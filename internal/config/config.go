// Package config loads process configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"managrr/internal/domain/entities"
)

const (
	StoreMemory   = "memory"
	StoreDynamoDB = "dynamodb"
)

var ErrInvalidUserType = errors.New("invalid user type")
var ErrInvalidStore = errors.New("invalid estimates store")
var ErrMissingContractID = errors.New("missing ESTIMATES_CONTRACT_ID")

// API configures the sandbox estimates API (cmd/api).
//
// Supported env vars (local-friendly):
//   - PORT (default: 8080)
//   - ESTIMATES_STORE: memory | dynamodb (default: memory)
//   - ESTIMATES_TABLE (default: estimates)
//   - AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, DYNAMODB_ENDPOINT
type API struct {
	Port               int    `envconfig:"PORT" default:"8080"`
	Store              string `envconfig:"ESTIMATES_STORE" default:"memory"`
	EstimatesTable     string `envconfig:"ESTIMATES_TABLE" default:"estimates"`
	AWSRegion          string `envconfig:"AWS_REGION" default:"us-east-1"`
	AWSAccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" default:"local"`
	AWSSecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" default:"local"`
	DynamoDBEndpoint   string `envconfig:"DYNAMODB_ENDPOINT"`
	LogLevel           string `envconfig:"LOG_LEVEL" default:"info"`
}

// Client configures the estimates terminal UI (cmd/estimates).
type Client struct {
	APIBaseURL  string        `envconfig:"ESTIMATES_API_BASE_URL" default:"http://localhost:8080/v1"`
	APIToken    string        `envconfig:"ESTIMATES_API_TOKEN"`
	ContractID  string        `envconfig:"ESTIMATES_CONTRACT_ID" required:"true"`
	UserType    string        `envconfig:"ESTIMATES_USER_TYPE" required:"true"`
	HTTPTimeout time.Duration `envconfig:"ESTIMATES_HTTP_TIMEOUT" default:"15s"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile     string        `envconfig:"LOG_FILE"`
}

func LoadAPI() (API, error) {
	var cfg API
	if err := envconfig.Process("", &cfg); err != nil {
		return API{}, fmt.Errorf("error loading env vars: %w", err)
	}
	if cfg.Store != StoreMemory && cfg.Store != StoreDynamoDB {
		return API{}, fmt.Errorf("%w: %q", ErrInvalidStore, cfg.Store)
	}
	return cfg, nil
}

func LoadClient() (Client, error) {
	var cfg Client
	if err := envconfig.Process("", &cfg); err != nil {
		return Client{}, fmt.Errorf("error loading env vars: %w", err)
	}
	if strings.TrimSpace(cfg.ContractID) == "" {
		return Client{}, ErrMissingContractID
	}
	if !entities.UserType(cfg.UserType).Valid() {
		return Client{}, fmt.Errorf("%w: %q", ErrInvalidUserType, cfg.UserType)
	}
	return cfg, nil
}
