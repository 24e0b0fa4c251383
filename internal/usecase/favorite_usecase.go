package usecase

import (
	"context"
	"time"

	"raices/internal/domain/entity"
)

// --- Input DTOs ---

// ToggleFavoriteInput identifies the item whose favorite state flips.
// UserID comes from the session, never from the payload.
type ToggleFavoriteInput struct {
	ItemID   LenientInt `json:"itemId"`
	ItemType string     `json:"itemType"`

	UserID int64 `json:"-"`
}

// --- Output DTOs ---

// ToggleFavoriteOutput reports the resulting favorite state.
type ToggleFavoriteOutput struct {
	Favorited bool             `json:"favorited"`
	Favorite  *entity.Favorite `json:"favorito,omitempty"`
}

// FavoriteItem is one entry of a user's favorites list: the favorite row
// flattened together with the resolved item and its type discriminant.
type FavoriteItem struct {
	ID        int64                   `json:"id"`
	CreatedAt time.Time               `json:"createdAt"`
	Type      entity.FavoriteItemType `json:"type"`
	Item      any                     `json:"item"`
}

// FavoriteUsecase defines the interface for favorites-related business operations.
type FavoriteUsecase interface {
	Toggle(ctx context.Context, input *ToggleFavoriteInput) (*ToggleFavoriteOutput, error)
	List(ctx context.Context, userID int64) ([]FavoriteItem, error)
}
