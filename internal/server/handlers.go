package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fact-agent/fact-engine/internal/knowledge"
	"github.com/fact-agent/fact-engine/internal/logger"
	"github.com/fact-agent/fact-engine/internal/metrics"
	"github.com/fact-agent/fact-engine/internal/persona"
	"github.com/fact-agent/fact-engine/internal/search"
	"github.com/fact-agent/fact-engine/internal/training"
	"github.com/fact-agent/fact-engine/internal/version"
)

// noAnswerMessage is returned when no result clears the medium
// confidence bar, so callers degrade gracefully instead of relaying a
// weak match.
const noAnswerMessage = "no confident answer found"

// SearchRequest is the webhook search payload. Utterances, when
// present, drive persona detection for the persona boost; an explicit
// persona wins over detection. A conversation id opts the call into
// per-conversation trust tracking.
type SearchRequest struct {
	Query          string   `json:"query"`
	State          string   `json:"state,omitempty"`
	Category       string   `json:"category,omitempty"`
	Persona        string   `json:"persona,omitempty"`
	Utterances     []string `json:"utterances,omitempty"`
	ConversationID string   `json:"conversation_id,omitempty"`
	Limit          int      `json:"limit,omitempty"`
}

// FeedbackRequest is the webhook feedback payload.
type FeedbackRequest struct {
	Query          string `json:"query"`
	EntryID        int64  `json:"entry_id"`
	Kind           string `json:"kind"`
	ExpectedAnswer string `json:"expected_answer,omitempty"`
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	var req SearchRequest
	if err := c.BodyParser(&req); err != nil {
		metrics.SearchTotal.WithLabelValues("bad_request").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if req.Query == "" {
		metrics.SearchTotal.WithLabelValues("bad_request").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	detected := knowledge.Persona(req.Persona)
	if detected == "" && len(req.Utterances) > 0 {
		detected = persona.Detect(req.Utterances)
	}

	filters := search.Filters{
		State:    req.State,
		Category: knowledge.Category(req.Category),
		Persona:  detected,
	}

	start := time.Now()
	results := s.retriever.Search(req.Query, filters, req.Limit)
	elapsed := time.Since(start)

	confidence := search.ConfidenceLow
	if len(results) > 0 {
		confidence = results[0].Confidence
	}
	answered := confidence != search.ConfidenceLow

	metrics.SearchDuration.WithLabelValues(string(confidence)).Observe(elapsed.Seconds())
	if answered {
		metrics.SearchTotal.WithLabelValues("answered").Inc()
	} else {
		metrics.SearchTotal.WithLabelValues("no_answer").Inc()
	}

	logger.Debug("webhook search",
		zap.String("query", req.Query),
		zap.String("persona", string(detected)),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", elapsed))

	resp := fiber.Map{
		"answered": true,
		"persona":  detected,
		"results":  results,
	}
	if !answered {
		resp = fiber.Map{
			"answered": false,
			"message":  noAnswerMessage,
			"results":  results,
		}
	}
	if req.ConversationID != "" {
		resp["trust"] = s.recordAnswer(req.ConversationID, confidence)
	}

	return c.JSON(resp)
}

// recordAnswer folds the answer outcome into the conversation's trust
// score and returns the updated value.
func (s *Server) recordAnswer(conversationID string, confidence search.Confidence) float64 {
	s.trustMu.Lock()
	defer s.trustMu.Unlock()

	score, ok := s.trust[conversationID]
	if !ok {
		score = persona.NewTrustScore()
		s.trust[conversationID] = score
	}
	score.RecordAnswer(confidence)
	return score.Score()
}

func (s *Server) handleFeedback(c *fiber.Ctx) error {
	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		metrics.FeedbackTotal.WithLabelValues("unknown", "bad_request").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	kind := training.FeedbackKind(req.Kind)
	err := s.engine.SubmitFeedback(req.Query, req.EntryID, kind, req.ExpectedAnswer)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, training.ErrInvalidFeedbackTarget) {
			status = fiber.StatusNotFound
		}
		metrics.FeedbackTotal.WithLabelValues(req.Kind, "rejected").Inc()
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	state := s.engine.State()
	metrics.FeedbackTotal.WithLabelValues(req.Kind, "accepted").Inc()
	metrics.TrainingAccuracy.Set(state.Accuracy)

	return c.JSON(fiber.Map{
		"accepted": true,
		"state":    state,
	})
}

func (s *Server) handleTrainingStatus(c *fiber.Ctx) error {
	return c.JSON(s.engine.State())
}

func (s *Server) handleTrainingSuggestions(c *fiber.Ctx) error {
	return c.JSON(s.engine.Suggestions())
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	metrics.KnowledgeEntries.Set(float64(s.store.Len()))
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version.Version,
		"entries": s.store.Len(),
	})
}
