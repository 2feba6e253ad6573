package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// SafeInvalidateAnalytics invalidates analytics caches with logging. Stale
// snapshots are tolerable, so submission paths never fail on this.
func SafeInvalidateAnalytics(ctx context.Context, cm *CacheManager) {
	if err := cm.InvalidateAnalytics(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate analytics cache", "error", err)
	}
}

// SafeInvalidateFaculty invalidates faculty caches with logging.
func SafeInvalidateFaculty(ctx context.Context, cm *CacheManager, facultyID string) {
	if err := cm.InvalidateFaculty(ctx, facultyID); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate faculty cache",
			"error", err,
			"faculty_id", fmt.Sprintf("%.50s", facultyID))
	}
}
