package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix      = "user:%d"
	AvgRatingKeyPrefix = "space:%d:avg_rating"
)

const (
	UserTTL      = 5 * time.Minute
	AvgRatingTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func AvgRatingKey(spaceID uint) string {
	return fmt.Sprintf(AvgRatingKeyPrefix, spaceID)
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateAvgRating drops the cached average after any rating write for the space.
func InvalidateAvgRating(ctx context.Context, spaceID uint) {
	Invalidate(ctx, AvgRatingKey(spaceID))
}
