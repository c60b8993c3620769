package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"skillmatch/internal/ai"
)

// getHealthCheckTimeout returns the configured health check timeout
func (s *Server) getHealthCheckTimeout() time.Duration {
	timeout := s.AppConfig.Observability.HealthCheck.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

// healthHandler provides a health check endpoint including oracle model status
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "healthy",
		"service": "skillmatch",
		"version": s.Version,
	}

	// Check oracle model availability
	oracleStatus := s.checkOracleHealth()
	response["oracle"] = oracleStatus

	// Check evaluation policy availability
	response["evaluation_policies"] = s.checkPolicyHealth()

	// Determine overall health status
	overallHealthy := true
	if modelInfo, ok := oracleStatus["classify"].(map[string]any); ok {
		if available, exists := modelInfo["available"]; exists {
			if avail, ok := available.(bool); ok && !avail {
				overallHealthy = false
			}
		}
	}

	if !overallHealthy {
		response["status"] = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode health response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// checkOracleHealth checks the availability of the proficiency oracle
func (s *Server) checkOracleHealth() map[string]any {
	timeout := s.getHealthCheckTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	oracleStatus := make(map[string]any)

	classifyConfig := s.AppConfig.GetClassifyConfig()
	if classifyService, err := ai.NewService(&classifyConfig, "classify", s.Logger); err == nil {
		modelInfo := classifyService.GetModelInfo(ctx)
		oracleStatus["classify"] = map[string]any{
			"model":     modelInfo,
			"available": modelInfo.Available,
		}
	} else {
		oracleStatus["classify"] = map[string]any{
			"available": false,
			"error":     fmt.Sprintf("Failed to create classify service: %v", err),
		}
	}

	return oracleStatus
}

// checkPolicyHealth reports the loaded evaluation policies
func (s *Server) checkPolicyHealth() map[string]any {
	if s.PolicyStore == nil {
		return map[string]any{
			"source":           "builtin_defaults",
			"default_division": s.AppConfig.Evaluation.DefaultDivision,
		}
	}
	return map[string]any{
		"source":           "policy_file",
		"policy_ids":       s.PolicyStore.IDs(),
		"hot_reload":       s.AppConfig.Evaluation.WatchConfigFile,
		"default_division": s.AppConfig.Evaluation.DefaultDivision,
	}
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"service": "skillmatch",
		"version": s.Version,
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
		},
	}

	// Add rate limiting stats if enabled
	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{
			"enabled": false,
		}
	}

	// Add configuration info
	if s.RateLimit != nil {
		response["rate_limit_config"] = map[string]any{
			"enabled":          s.RateLimit.Enabled,
			"requests_per_min": s.RateLimit.RequestsPerMin,
			"burst_capacity":   s.RateLimit.BurstCapacity,
			"by_ip":            s.RateLimit.ByIP,
			"by_api_key":       s.RateLimit.ByAPIKey,
		}
	}

	if s.PolicyStore != nil {
		response["evaluation_policies"] = s.PolicyStore.IDs()
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode stats response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// parseJSONRequest parses JSON request body into the provided struct
func parseJSONRequest(r *http.Request, v any) error {
	if r.Header.Get("Content-Type") != "application/json" {
		return fmt.Errorf("content-type must be application/json")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("request body too large (limit is %d bytes)", maxBytesErr.Limit)
		}
		return fmt.Errorf("failed to read request body: %w", err)
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.Printf("Failed to close request body: %v", err)
		}
	}()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return nil
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, error, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error:   error,
		Message: message,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		log.Printf("Failed to encode error response: %v", err)
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
