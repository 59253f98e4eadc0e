package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidfriends/videoembed/internal/db"
	"github.com/vidfriends/videoembed/internal/models"
	"github.com/vidfriends/videoembed/internal/videos"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

const maxListLimit = 500

// PostgresThumbnailRepository provides PostgreSQL-backed persistence for Vimeo thumbnails.
type PostgresThumbnailRepository struct {
	pool db.Pool
}

// NewPostgresThumbnailRepository constructs a thumbnail repository backed by PostgreSQL.
func NewPostgresThumbnailRepository(pool db.Pool) *PostgresThumbnailRepository {
	return &PostgresThumbnailRepository{pool: pool}
}

// Upsert inserts or replaces the thumbnail URLs for a video.
func (r *PostgresThumbnailRepository) Upsert(ctx context.Context, thumbs models.VimeoThumbnails) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	updatedAt := thumbs.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err = conn.Exec(ctx, `
        INSERT INTO vimeo_thumbnails (video_id, small, medium, large, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (video_id) DO UPDATE
        SET small = excluded.small,
            medium = excluded.medium,
            large = excluded.large,
            updated_at = excluded.updated_at
    `, thumbs.VideoID, thumbs.Small, thumbs.Medium, thumbs.Large, updatedAt)
	if err != nil {
		return fmt.Errorf("upsert vimeo thumbnails: %w", err)
	}

	return nil
}

// Thumbnails fetches the stored thumbnail URLs for a video.
func (r *PostgresThumbnailRepository) Thumbnails(ctx context.Context, videoID string) (models.VimeoThumbnails, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.VimeoThumbnails{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        SELECT video_id, small, medium, large, updated_at
        FROM vimeo_thumbnails
        WHERE video_id = $1
    `, videoID)

	var thumbs models.VimeoThumbnails
	if err := row.Scan(&thumbs.VideoID, &thumbs.Small, &thumbs.Medium, &thumbs.Large, &thumbs.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.VimeoThumbnails{}, ErrNotFound
		}
		return models.VimeoThumbnails{}, fmt.Errorf("select vimeo thumbnails: %w", err)
	}

	return thumbs, nil
}

// Source exposes the repository as a videos.Source so the renderer can
// resolve Vimeo thumbnails from it.
func (r *PostgresThumbnailRepository) Source() videos.Source {
	return videos.SourceFunc(func(ctx context.Context, videoID string) (videos.ThumbnailSet, error) {
		thumbs, err := r.Thumbnails(ctx, videoID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return videos.ThumbnailSet{}, fmt.Errorf("%w: %s", videos.ErrThumbnailNotFound, videoID)
			}
			return videos.ThumbnailSet{}, err
		}
		return videos.ThumbnailSet{Small: thumbs.Small, Medium: thumbs.Medium, Large: thumbs.Large}, nil
	})
}

// PostgresEmbedRepository provides PostgreSQL-backed persistence for published embeds.
type PostgresEmbedRepository struct {
	pool db.Pool
}

// NewPostgresEmbedRepository constructs an embed repository backed by PostgreSQL.
func NewPostgresEmbedRepository(pool db.Pool) *PostgresEmbedRepository {
	return &PostgresEmbedRepository{pool: pool}
}

// Create stores a new published embed record. A record with the same id or
// fingerprint yields ErrConflict.
func (r *PostgresEmbedRepository) Create(ctx context.Context, embed models.PublishedEmbed) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	status := embed.Status
	if status == "" {
		status = models.PublishStatusPending
	}
	options := embed.Options
	if options == nil {
		options = map[string]string{}
	}

	_, err = conn.Exec(ctx, `
        INSERT INTO published_embeds (id, provider, video_id, source_url, options, fingerprint, html, location, status, created_at, published_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    `, embed.ID, embed.Provider, embed.VideoID, embed.SourceURL, options, embed.Fingerprint, embed.HTML, embed.Location, status, embed.CreatedAt, embed.PublishedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return fmt.Errorf("insert published embed: %w", err)
	}

	return nil
}

// List returns published embeds newest first, optionally filtered by provider.
func (r *PostgresEmbedRepository) List(ctx context.Context, provider string, limit int) ([]models.PublishedEmbed, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `
        SELECT id, provider, video_id, source_url, options, fingerprint, html, location, status, created_at, published_at
        FROM published_embeds
        WHERE $1 = '' OR provider = $1
        ORDER BY created_at DESC, id
        LIMIT $2
    `, provider, limit)
	if err != nil {
		return nil, fmt.Errorf("query published embeds: %w", err)
	}
	defer rows.Close()

	var embeds []models.PublishedEmbed
	for rows.Next() {
		var (
			embed       models.PublishedEmbed
			publishedAt sql.NullTime
		)
		if err := rows.Scan(&embed.ID, &embed.Provider, &embed.VideoID, &embed.SourceURL, &embed.Options, &embed.Fingerprint, &embed.HTML, &embed.Location, &embed.Status, &embed.CreatedAt, &publishedAt); err != nil {
			return nil, fmt.Errorf("scan published embed: %w", err)
		}
		if publishedAt.Valid {
			t := publishedAt.Time.UTC()
			embed.PublishedAt = &t
		}
		embeds = append(embeds, embed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate published embeds: %w", err)
	}

	return embeds, nil
}

// MarkPublished records the storage location of an uploaded fragment.
func (r *PostgresEmbedRepository) MarkPublished(ctx context.Context, id, location string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE published_embeds
        SET status = $2,
            location = $3,
            published_at = $4
        WHERE id = $1
    `, id, models.PublishStatusPublished, location, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark embed published: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// MarkFailed records a failed upload.
func (r *PostgresEmbedRepository) MarkFailed(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `
        UPDATE published_embeds
        SET status = $2,
            location = '',
            published_at = NULL
        WHERE id = $1
    `, id, models.PublishStatusFailed)
	if err != nil {
		return fmt.Errorf("mark embed failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes an embed record that never reached the upload queue.
func (r *PostgresEmbedRepository) Delete(ctx context.Context, id string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM published_embeds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete embed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

var _ ThumbnailRepository = (*PostgresThumbnailRepository)(nil)
var _ EmbedRepository = (*PostgresEmbedRepository)(nil)
var _ videos.PublishStatusUpdater = (*PostgresEmbedRepository)(nil)
