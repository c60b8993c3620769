package server

import (
	"context"
	"encoding/json"
	"net/http"

	"skillmatch/internal/ai"
	"skillmatch/internal/evaluation"
	"skillmatch/internal/observability"
	"skillmatch/internal/proficiency"
	"skillmatch/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// newAnalyzer wires the configured proficiency oracle into a skill analyzer
func (s *Server) newAnalyzer() (*proficiency.Analyzer, error) {
	classifyConfig := s.AppConfig.GetClassifyConfig()
	oracleService, err := ai.NewService(&classifyConfig, "classify", s.Logger)
	if err != nil {
		return nil, err
	}
	return proficiency.NewAnalyzer(oracleService, s.Logger), nil
}

// policyFor selects the evaluation policy for a request. An explicit policy id
// wins, then the division lookup; without a policy store the built-in
// defaults apply.
func (s *Server) policyFor(policyID, division string) evaluation.EvaluationConfig {
	if division == "" {
		division = s.AppConfig.Evaluation.DefaultDivision
	}
	if s.PolicyStore == nil {
		return evaluation.DefaultConfig(division)
	}
	if policyID != "" {
		return s.PolicyStore.Get(policyID)
	}
	return s.PolicyStore.GetForDivision(division)
}

// createProfileHandler wraps the profile handler with observability
func (s *Server) createProfileHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillmatch.api")
		ctx, span := tracer.Start(ctx, "api.profile")
		defer span.End()

		var req ProfileRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if len(req.Candidate.Skills) == 0 {
			writeErrorResponse(w, "Missing skills", "candidate must declare at least one skill", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("candidate.name", req.Candidate.Name),
			attribute.Int("request.skills", len(req.Candidate.Skills)),
			attribute.Int("request.employment_records", len(req.Candidate.Employment)),
			attribute.String("operation", "profile"),
		)

		analyzer, err := s.newAnalyzer()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create oracle service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var result types.ProfileOutput
		err = metrics.TrackOracleOperation(ctx, "profile", func(ctx context.Context) *observability.OracleOperationResult {
			result = analyzer.AnalyzeProfile(ctx, req.Candidate)
			return &observability.OracleOperationResult{}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "oracle_processing"))
			metrics.RecordBusinessMetric(ctx, "profile_built", false, om,
				attribute.String("error", err.Error()))
			writeErrorResponse(w, "Failed to build skill profile", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordBusinessMetric(ctx, "profile_built", true, om,
			attribute.Int("output.assessments", len(result.Assessments)))
		for _, assessment := range result.Assessments {
			metrics.RecordBusinessMetric(ctx, "skill_classified", true, om,
				attribute.String("tier", string(assessment.Proficiency)),
				attribute.String("source", string(assessment.Source)))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.assessments", len(result.Assessments)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createMatchHandler wraps the match handler with observability
func (s *Server) createMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillmatch.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		var req MatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		policy := s.policyFor(req.PolicyID, req.Division)

		span.SetAttributes(
			attribute.String("candidate.name", req.Candidate.Name),
			attribute.String("requisition.title", req.Requisition.Title),
			attribute.String("policy.id", policy.ID),
			attribute.String("operation", "match"),
		)

		candidate := req.Candidate
		var result types.MatchOutput
		if req.WithProfile {
			analyzer, err := s.newAnalyzer()
			if err != nil {
				span.RecordError(err)
				span.SetAttributes(attribute.String("error.type", "service_creation"))
				writeErrorResponse(w, "Failed to create oracle service", err.Error(), http.StatusInternalServerError)
				return
			}
			// Evaluate against the enriched skill entities so criterion
			// evidence carries the assessed confidence and years
			profile := analyzer.AnalyzeProfile(ctx, candidate)
			candidate.Skills = profile.Skills
			result.Profile = profile.Assessments
		}

		evaluator := evaluation.NewEvaluator(s.Logger)
		result.Evaluation = evaluator.Evaluate(candidate, req.Requisition, policy)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "candidate_evaluated", true, om,
			attribute.String("recommendation", string(result.Evaluation.Recommendation)),
			attribute.Bool("disqualified", result.Evaluation.IsDisqualified))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("response.overall_score", result.Evaluation.OverallScore),
			attribute.String("response.recommendation", string(result.Evaluation.Recommendation)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createBatchMatchHandler wraps the batch match handler with observability
func (s *Server) createBatchMatchHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("skillmatch.api")
		ctx, span := tracer.Start(ctx, "api.match_batch")
		defer span.End()

		var req BatchMatchRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if len(req.Candidates) == 0 {
			writeErrorResponse(w, "Missing candidates", "candidates field must not be empty", http.StatusBadRequest)
			return
		}

		policy := s.policyFor(req.PolicyID, req.Division)

		span.SetAttributes(
			attribute.Int("request.candidates", len(req.Candidates)),
			attribute.String("requisition.title", req.Requisition.Title),
			attribute.String("policy.id", policy.ID),
			attribute.String("operation", "match_batch"),
		)

		evaluator := evaluation.NewEvaluator(s.Logger)
		result := evaluator.EvaluateBatch(req.Candidates, req.Requisition, policy)

		metrics := om.GetMetrics()
		for _, eval := range result.Evaluations {
			metrics.RecordBusinessMetric(ctx, "candidate_evaluated", true, om,
				attribute.String("recommendation", string(eval.Recommendation)),
				attribute.Bool("disqualified", eval.IsDisqualified))
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.evaluations", len(result.Evaluations)),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
