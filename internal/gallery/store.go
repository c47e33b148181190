package gallery

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"unicode"
)

// Category is the category a photo's album belongs to.
type Category struct {
	ID   int64
	Name string
	Slug string
}

// AlbumRef is the album a photo belongs to.
type AlbumRef struct {
	ID    int64
	Title string
}

// Photo is a read-only gallery catalog record.
type Photo struct {
	ID       int64
	Title    string
	Likes    int
	Album    AlbumRef
	Category Category
}

// Slug returns the photo's URL slug, title-based with the id suffix.
func (p Photo) Slug() string {
	return fmt.Sprintf("%s-%d", Slugify(p.Title), p.ID)
}

// AlbumSlug returns the owning album's URL slug.
func (p Photo) AlbumSlug() string {
	return fmt.Sprintf("%s-%d", Slugify(p.Album.Title), p.Album.ID)
}

// Store is the read-only query surface the assistant needs from the
// gallery catalog.
type Store interface {
	// PopularPhotos returns photos of active albums ordered by likes
	// descending, ties broken by ascending id.
	PopularPhotos(ctx context.Context, limit int) ([]Photo, error)
}

// PostgresStore implements Store against the gallery database.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const popularPhotosQuery = `
SELECT p.id, p.title, p.likes,
       a.id, a.title,
       c.id, c.name, c.slug
FROM photos p
JOIN albums a ON a.id = p.album_id
JOIN categories c ON c.id = a.category_id
WHERE a.is_active = true
ORDER BY p.likes DESC, p.id ASC
LIMIT $1`

func (s *PostgresStore) PopularPhotos(ctx context.Context, limit int) ([]Photo, error) {
	rows, err := s.db.QueryContext(ctx, popularPhotosQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("query popular photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Likes,
			&p.Album.ID, &p.Album.Title,
			&p.Category.ID, &p.Category.Name, &p.Category.Slug,
		); err != nil {
			return nil, fmt.Errorf("scan popular photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular photos: %w", err)
	}
	return photos, nil
}

// Slugify lowercases the value and collapses runs of non-alphanumeric
// characters into single hyphens.
func Slugify(value string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(value) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
