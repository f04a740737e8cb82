// Package cache stores generative-model responses keyed by prompt and media
// fingerprint, either in memory or in Redis.
package cache

import "context"

// ResponseCache is implemented by both the in-memory manager and the Redis
// service.
type ResponseCache interface {
	Get(ctx context.Context, prompt, media string) (string, error)
	Set(ctx context.Context, prompt, media, value string) error
	Close() error
}
