package services

import (
	"context"
	"time"

	"campusfix/cache"
)

// dedupTTL how long a processed request id is remembered. Long enough to
// absorb any realistic client retry window.
const dedupTTL = 24 * time.Hour

// claimRequestID records a client-generated request id and reports whether
// this delivery is the first one. Non-idempotent operations (note appends,
// upvote toggles) call this before writing so an at-least-once transport
// still yields at-most-once side effects. An empty id skips the guard.
func claimRequestID(ctx context.Context, requestID string) error {
	if requestID == "" {
		return nil
	}
	ok, err := cache.Client.SetNX(ctx, "reqid:"+requestID, 1, dedupTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateRequest
	}
	return nil
}

// releaseRequestID forgets a claimed id so the client may retry after the
// guarded write itself failed.
func releaseRequestID(ctx context.Context, requestID string) {
	if requestID == "" {
		return
	}
	cache.Client.Del(ctx, "reqid:"+requestID)
}
