// Package service coordinates model calls: response cache lookup, request
// pacing, and dispatch to the Gemini client.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pantry-chef/internal/core/ai/cache"
	"pantry-chef/internal/core/ai/gemini"
	"pantry-chef/internal/infrastructure/config"
	"pantry-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Response is a model answer plus its cache provenance.
type Response struct {
	Content  string
	CacheHit bool
	Duration time.Duration
}

// Service fronts the model provider with caching and pacing.
type Service struct {
	config   *config.Config
	provider *gemini.Client
	cache    cache.ResponseCache

	mu          sync.Mutex
	lastRequest time.Time
}

// NewService wires the provider and cache. responseCache may be nil when
// caching is disabled.
func NewService(cfg *config.Config, responseCache cache.ResponseCache) *Service {
	return &Service{
		config:   cfg,
		provider: gemini.NewClient(&cfg.Gemini, &cfg.Media),
		cache:    responseCache,
	}
}

// ProcessText answers a text prompt, consulting the cache first.
func (s *Service) ProcessText(ctx context.Context, prompt string) (*Response, error) {
	if cached, ok := s.lookup(ctx, prompt, ""); ok {
		return cached, nil
	}

	if err := s.pace(); err != nil {
		return nil, err
	}

	start := time.Now()
	content, err := s.provider.GenerateText(ctx, prompt)
	if err != nil {
		return nil, common.NewError(common.ErrAIServiceError.Code, "model call failed", common.ErrAIServiceError.Status, err)
	}

	s.store(ctx, prompt, "", content)
	return &Response{Content: content, Duration: time.Since(start)}, nil
}

// ProcessVideo uploads the media file, waits for it to become ready, runs the
// prompt against it, and deletes the remote file afterwards. Deletion
// failures are logged and never fail the request.
func (s *Service) ProcessVideo(ctx context.Context, mediaPath, prompt string) (*Response, error) {
	if cached, ok := s.lookup(ctx, prompt, mediaPath); ok {
		return cached, nil
	}

	if err := s.pace(); err != nil {
		return nil, err
	}

	start := time.Now()

	file, err := s.provider.UploadFile(ctx, mediaPath)
	if err != nil {
		return nil, common.NewError(common.ErrAIServiceError.Code, "media upload failed", common.ErrAIServiceError.Status, err)
	}
	defer func() {
		if delErr := s.provider.DeleteFile(context.Background(), file); delErr != nil {
			common.LogWarn("failed to delete remote media",
				zap.String("file", file.Name),
				zap.Error(delErr),
			)
		}
	}()

	if err := s.provider.WaitForFile(ctx, file); err != nil {
		if timeout, ok := err.(*gemini.MediaTimeoutError); ok {
			return nil, common.NewError(common.ErrCodeMediaTimeout, timeout.Error(), common.ErrGatewayTimeout.Status, timeout)
		}
		return nil, common.NewError(common.ErrAIServiceError.Code, "media processing failed", common.ErrAIServiceError.Status, err)
	}

	content, err := s.provider.GenerateWithFile(ctx, file, prompt)
	if err != nil {
		return nil, common.NewError(common.ErrAIServiceError.Code, "model call failed", common.ErrAIServiceError.Status, err)
	}

	s.store(ctx, prompt, mediaPath, content)
	return &Response{Content: content, Duration: time.Since(start)}, nil
}

func (s *Service) lookup(ctx context.Context, prompt, media string) (*Response, bool) {
	if s.cache == nil {
		return nil, false
	}
	content, err := s.cache.Get(ctx, prompt, media)
	if err != nil || content == "" {
		return nil, false
	}
	common.LogDebug("serving cached model response")
	return &Response{Content: content, CacheHit: true}, true
}

func (s *Service) store(ctx context.Context, prompt, media, content string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, prompt, media, content); err != nil {
		common.LogWarn("failed to cache model response", zap.Error(err))
	}
}

// pace enforces a minimum spacing between provider calls when rate limiting
// is enabled.
func (s *Service) pace() error {
	if !s.config.RateLimit.Enabled || s.config.RateLimit.Requests <= 0 {
		return nil
	}

	minInterval := s.config.RateLimit.Window / time.Duration(s.config.RateLimit.Requests)

	s.mu.Lock()
	defer s.mu.Unlock()

	if elapsed := time.Since(s.lastRequest); elapsed < minInterval {
		wait := minInterval - elapsed
		if wait > time.Second {
			return fmt.Errorf("provider rate limited, retry in %s", wait.Round(time.Millisecond))
		}
		time.Sleep(wait)
	}
	s.lastRequest = time.Now()
	return nil
}
