package config

import "fmt"

// Validate checks the configuration for values that would break engine
// invariants at runtime.
func (c *Config) Validate() error {
	s := c.Search
	if s.DefaultLimit < 1 {
		return fmt.Errorf("search.defaultLimit must be at least 1, got %d", s.DefaultLimit)
	}
	if s.ConfidenceHigh <= s.ConfidenceMedium {
		return fmt.Errorf("search.confidenceHigh (%.2f) must exceed confidenceMedium (%.2f)",
			s.ConfidenceHigh, s.ConfidenceMedium)
	}
	if s.ConfidenceMedium <= 0 || s.ConfidenceHigh > 1 {
		return fmt.Errorf("confidence thresholds must be in (0,1], got medium=%.2f high=%.2f",
			s.ConfidenceMedium, s.ConfidenceHigh)
	}
	if s.ConfidenceMargin < 0 {
		return fmt.Errorf("search.confidenceMargin must be non-negative, got %.2f", s.ConfidenceMargin)
	}
	for name, boost := range map[string]float64{
		"stateBoost":          s.StateBoost,
		"categoryBoost":       s.CategoryBoost,
		"personaBoost":        s.PersonaBoost,
		"priorityHighBoost":   s.PriorityHighBoost,
		"priorityNormalBoost": s.PriorityNormalBoost,
		"correctionBoost":     s.CorrectionBoost,
	} {
		if boost < 1.0 {
			return fmt.Errorf("search.%s must be at least 1.0 (boosts never penalize), got %.2f", name, boost)
		}
	}

	t := c.Training
	if t.LearningRate <= 0 || t.LearningRate >= 1 {
		return fmt.Errorf("training.learningRate must be in (0,1), got %.2f", t.LearningRate)
	}
	if t.WeightFloor <= 0 || t.WeightCeiling >= 1 || t.WeightFloor >= t.WeightCeiling {
		return fmt.Errorf("training weight bounds must satisfy 0 < floor < ceiling < 1, got floor=%.2f ceiling=%.2f",
			t.WeightFloor, t.WeightCeiling)
	}
	if t.RetrainInterval < 1 {
		return fmt.Errorf("training.retrainInterval must be at least 1, got %d", t.RetrainInterval)
	}
	if t.TargetAccuracy <= 0 || t.TargetAccuracy > 1 {
		return fmt.Errorf("training.targetAccuracy must be in (0,1], got %.2f", t.TargetAccuracy)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port)
	}

	return nil
}
