package dynamic

import (
	"context"
	"fmt"

	"github.com/galeriku/gallery-assistant/internal/catalog"
	"github.com/galeriku/gallery-assistant/internal/gallery"
	"github.com/galeriku/gallery-assistant/internal/logger"
	"github.com/galeriku/gallery-assistant/internal/models"
)

// DefaultLimit is how many results a dynamic intent fetches when the
// caller does not specify one.
const DefaultLimit = 3

// Resolver maps dynamic intents to live gallery catalog queries. Any
// query failure degrades to an empty result; callers treat empty as
// "no dynamic content available", never as an error.
type Resolver struct {
	store  gallery.Store
	logger logger.Logger
}

func NewResolver(store gallery.Store, log logger.Logger) *Resolver {
	return &Resolver{
		store: store,
		logger: log.With(map[string]interface{}{
			"component": "dynamic",
		}),
	}
}

// Supports reports whether the intent resolves against live data.
func (r *Resolver) Supports(intent catalog.Intent) bool {
	return intent == catalog.IntentPopularPhotos
}

// Resolve fetches the dynamic results for an intent. Unsupported
// intents and failed queries both yield an empty slice.
func (r *Resolver) Resolve(ctx context.Context, intent catalog.Intent, lang catalog.Language, limit int) []models.DynamicItem {
	if limit <= 0 {
		limit = DefaultLimit
	}

	switch intent {
	case catalog.IntentPopularPhotos:
		return r.popularPhotos(ctx, lang, limit)
	}
	return nil
}

func (r *Resolver) popularPhotos(ctx context.Context, lang catalog.Language, limit int) []models.DynamicItem {
	photos, err := r.store.PopularPhotos(ctx, limit)
	if err != nil {
		r.logger.Warn("popular photos query failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	unit := "likes"
	if lang.Normalize() == catalog.LangID {
		unit = "suka"
	}

	items := make([]models.DynamicItem, 0, len(photos))
	for _, photo := range photos {
		items = append(items, models.DynamicItem{
			ID:    photo.ID,
			Type:  "photo",
			Title: photo.Title,
			Slug:  photo.Slug(),
			Likes: photo.Likes,
			Category: models.CategoryRef{
				ID:   photo.Category.ID,
				Name: photo.Category.Name,
				Slug: photo.Category.Slug,
			},
			Album: models.AlbumRef{
				ID:    photo.Album.ID,
				Title: photo.Album.Title,
				Slug:  photo.AlbumSlug(),
			},
			Text: fmt.Sprintf("%s (%d %s)", photo.Title, photo.Likes, unit),
		})
	}
	return items
}
