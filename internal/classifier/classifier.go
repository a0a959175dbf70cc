package classifier

import (
	"context"
	"log/slog"

	"github.com/mindmirror-app/mindmirror/internal/llm"
)

const classifyTemperature = 0.7

// PersonalizationSource provides the per-user context injected into the
// classification prompt. Implemented by the store.
type PersonalizationSource interface {
	PersonalizationContext(ctx context.Context, userID string) (*Personalization, error)
}

type Classifier struct {
	llm      *llm.Client
	personal PersonalizationSource
	logger   *slog.Logger
}

func New(client *llm.Client, personal PersonalizationSource, logger *slog.Logger) *Classifier {
	return &Classifier{llm: client, personal: personal, logger: logger}
}

// Analyze classifies a journal entry into the 5-mood taxonomy and returns a
// supportive reflection. When userID is set, the prompt is personalized from
// the user's profile, interests, habits, and learned mood signatures;
// personalization is strictly best-effort and any fetch failure falls back to
// the base prompt.
func (c *Classifier) Analyze(ctx context.Context, journalText, userID string) (Result, error) {
	prompt := BasePrompt()

	if userID != "" && c.personal != nil {
		p, err := c.personal.PersonalizationContext(ctx, userID)
		if err != nil {
			c.logger.Warn("personalization fetch failed, using base prompt",
				"user_id", userID,
				"error", err,
			)
		} else if !p.Empty() {
			prompt = PersonalizedPrompt(p)
			c.logger.Info("using personalized prompt",
				"user_id", userID,
				"interests", len(p.Interests),
				"habits", len(p.Habits),
				"signatures", len(p.Signatures),
			)
		}
	}

	raw, err := c.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: journalText},
	}, classifyTemperature)
	if err != nil {
		return Result{}, err
	}

	result, err := Validate(raw)
	if err != nil {
		c.logger.Error("model returned schema-violating classification", "raw", raw, "error", err)
		return Result{}, err
	}

	if result.Fallback {
		c.logger.Warn("unparsable model output, returning fallback classification", "raw", raw)
	}

	return result, nil
}
