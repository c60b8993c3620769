package server

import (
	"time"

	"skillmatch/internal/config"
	smerrors "skillmatch/internal/errors"
	"skillmatch/internal/types"
)

// ProfileRequest represents the request body for the profile endpoint
type ProfileRequest struct {
	Candidate types.CandidateProfile `json:"candidate"`
}

// MatchRequest represents the request body for the match endpoint
type MatchRequest struct {
	Candidate   types.CandidateProfile `json:"candidate"`
	Requisition types.Requisition      `json:"requisition"`
	PolicyID    string                 `json:"policyId,omitempty"`
	Division    string                 `json:"division,omitempty"`
	WithProfile bool                   `json:"withProfile,omitempty"`
}

// BatchMatchRequest represents the request body for the batch match endpoint
type BatchMatchRequest struct {
	Candidates  []types.CandidateProfile `json:"candidates"`
	Requisition types.Requisition        `json:"requisition"`
	PolicyID    string                   `json:"policyId,omitempty"`
	Division    string                   `json:"division,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Evaluation policies, hot-reloadable in serve mode
	PolicyStore *config.PolicyStore

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *smerrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	TLSConfig      config.TLSConfig
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *smerrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		TLSConfig:      cfg.TLSConfig,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
