package ai

import (
	"context"
	"fmt"
	"log"
	"time"
)

// TextGenerator produces raw model text for a prompt.
// Implementations: GeminiClient.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// DraftRequest asks for an AI-generated task draft.
type DraftRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

// Service turns a draft request into a sanitized TaskDraft.
type Service struct {
	generator TextGenerator
	now       func() time.Time
}

// NewService creates a draft service over a text generator.
func NewService(generator TextGenerator) *Service {
	return &Service{generator: generator, now: time.Now}
}

// NewServiceWithClock creates a draft service with a fixed clock (for tests).
func NewServiceWithClock(generator TextGenerator, now func() time.Time) *Service {
	return &Service{generator: generator, now: now}
}

// GenerateDraft builds the prompt, calls the model and sanitizes whatever
// comes back.
func (s *Service) GenerateDraft(ctx context.Context, req DraftRequest) (*TaskDraft, error) {
	now := s.now().UTC()
	prompt := BuildPrompt(req.Title, req.Description, now)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate task draft: %w", err)
	}

	draft, err := SanitizeDraft(raw, req.Title, now)
	if err != nil {
		return nil, err
	}

	log.Printf("ai draft generated for %q (%d subtasks)", draft.Title, len(draft.Subtasks))
	return draft, nil
}
