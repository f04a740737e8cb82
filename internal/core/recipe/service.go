// Package recipe orchestrates the generation flows: compose a prompt from
// the pantry snapshot and persona, call the model, then validate the reply
// through the extraction pipeline and bind ingredient identifiers.
package recipe

import (
	"context"
	"fmt"
	"time"

	aiservice "pantry-chef/internal/core/ai/service"
	"pantry-chef/internal/core/pantry"
	"pantry-chef/internal/core/persona"
	"pantry-chef/internal/core/pipeline"
	"pantry-chef/internal/core/prompt"
	"pantry-chef/internal/core/vocab"
	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Result is a fully validated recipe plus everything the pipeline reported
// about how it got there.
type Result struct {
	Recipe        *pipeline.ValidatedRecipe `json:"recipe"`
	Warnings      []pipeline.Warning        `json:"warnings"`
	IngredientIDs map[string]string         `json:"ingredient_ids"`
	Unbound       []string                  `json:"unbound,omitempty"`
	CacheHit      bool                      `json:"cache_hit"`
}

// Service runs the generation flows.
type Service struct {
	config    *config.Config
	ai        *aiservice.Service
	composer  *prompt.Composer
	personas  *persona.Registry
	assembler *pipeline.Assembler
}

// NewService loads the vocabulary and persona data and wires the pipeline.
func NewService(cfg *config.Config, ai *aiservice.Service) (*Service, error) {
	v, err := vocab.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	personas, err := persona.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load personas: %w", err)
	}

	return &Service{
		config:    cfg,
		ai:        ai,
		composer:  prompt.NewComposer(v),
		personas:  personas,
		assembler: pipeline.NewAssembler(v, pipeline.Policy(cfg.Pipeline.Policy), cfg.Pipeline.FuzzyCutoff),
	}, nil
}

// GenerateFromQuery builds a recipe from a free-text request.
func (s *Service) GenerateFromQuery(ctx context.Context, query string, items []pantry.Item, chefID string) (*Result, error) {
	idx, pantryJSON, err := s.indexPantry(items)
	if err != nil {
		return nil, err
	}

	chef := s.personas.Select(chefID)
	p := s.composer.Generation(query, pantryJSON, chef)

	resp, err := s.ai.ProcessText(ctx, p)
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, resp, idx, "query")
}

// GenerateFromVideo extracts a recipe from an uploaded cooking video.
func (s *Service) GenerateFromVideo(ctx context.Context, mediaPath, caption string, items []pantry.Item, chefID string) (*Result, error) {
	idx, pantryJSON, err := s.indexPantry(items)
	if err != nil {
		return nil, err
	}

	chef := s.personas.Select(chefID)
	p := s.composer.VideoAnalysis(caption, pantryJSON, chef)

	resp, err := s.ai.ProcessVideo(ctx, mediaPath, p)
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, resp, idx, "video")
}

// ImportFromWebText extracts and pantry-adapts a recipe from raw webpage
// text.
func (s *Service) ImportFromWebText(ctx context.Context, rawText string, items []pantry.Item) (*Result, error) {
	idx, pantryJSON, err := s.indexPantry(items)
	if err != nil {
		return nil, err
	}

	p := s.composer.WebImport(rawText, pantryJSON)

	resp, err := s.ai.ProcessText(ctx, p)
	if err != nil {
		return nil, err
	}

	return s.finish(ctx, resp, idx, "import")
}

// ChefIDs lists the available persona ids.
func (s *Service) ChefIDs() []string {
	return s.personas.IDs()
}

// indexPantry builds a per-request index so concurrent requests never see
// each other's snapshot, plus the serialized form handed to the model.
func (s *Service) indexPantry(items []pantry.Item) (*pantry.Index, string, error) {
	idx := pantry.NewIndex()
	idx.Rebuild(items)

	pantryJSON, err := common.ToJSON(items)
	if err != nil {
		return nil, "", common.NewError(common.ErrCodeInternalError, "failed to serialize pantry", common.ErrInternalError.Status, err)
	}
	return idx, pantryJSON, nil
}

func (s *Service) finish(ctx context.Context, resp *aiservice.Response, idx *pantry.Index, flow string) (*Result, error) {
	start := time.Now()

	rec, warnings, err := s.assembler.Assemble(resp.Content, idx)
	if err != nil {
		return nil, err
	}

	ids, unbound, err := pipeline.BindIngredientIDs(rec, idx, warnings)
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		common.LogWarn("pipeline coercion",
			zap.String("flow", flow),
			zap.String("kind", string(w.Kind)),
			zap.String("field", w.Field),
			zap.String("received", w.Received),
			zap.String("substituted", w.Substituted),
		)
	}

	common.LogInfo("recipe validated",
		zap.String("flow", flow),
		zap.String("title", rec.Title),
		zap.Int("warnings", len(warnings)),
		zap.Int("unbound", len(unbound)),
		zap.Bool("cache_hit", resp.CacheHit),
		zap.Duration("validation", time.Since(start)),
	)

	return &Result{
		Recipe:        rec,
		Warnings:      warnings,
		IngredientIDs: ids,
		Unbound:       unbound,
		CacheHit:      resp.CacheHit,
	}, nil
}
