package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/cockroachdb/cockroach-go/v2/testserver"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidfriends/videoembed/internal/models"
	"github.com/vidfriends/videoembed/internal/videos"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	server, err := testserver.NewTestServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start cockroach test server: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, server.PGURL().String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to cockroach test server: %v\n", err)
		server.Stop()
		os.Exit(1)
	}

	if err := applyMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "apply migrations: %v\n", err)
		pool.Close()
		server.Stop()
		os.Exit(1)
	}

	testPool = pool

	code := m.Run()

	pool.Close()
	server.Stop()

	os.Exit(code)
}

func TestPostgresThumbnailRepository_UpsertAndFetch(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresThumbnailRepository(testPool)

	if _, err := repo.Thumbnails(ctx, "62085792"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing video, got %v", err)
	}

	thumbs := models.VimeoThumbnails{
		VideoID:   "62085792",
		Small:     "https://i.vimeocdn.com/video/1_100x75.jpg",
		Medium:    "https://i.vimeocdn.com/video/1_200x150.jpg",
		Large:     "https://i.vimeocdn.com/video/1_640.jpg",
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if err := repo.Upsert(ctx, thumbs); err != nil {
		t.Fatalf("upsert thumbnails: %v", err)
	}

	thumbs.Large = "https://i.vimeocdn.com/video/1_1280.jpg"
	if err := repo.Upsert(ctx, thumbs); err != nil {
		t.Fatalf("upsert replacement thumbnails: %v", err)
	}

	fetched, err := repo.Thumbnails(ctx, "62085792")
	if err != nil {
		t.Fatalf("fetch thumbnails: %v", err)
	}
	if fetched.Small != thumbs.Small || fetched.Medium != thumbs.Medium || fetched.Large != thumbs.Large {
		t.Fatalf("unexpected thumbnails: %+v", fetched)
	}

	set, err := repo.Source().Thumbnails(ctx, "62085792")
	if err != nil {
		t.Fatalf("source thumbnails: %v", err)
	}
	if set.Large != thumbs.Large {
		t.Fatalf("unexpected source set: %+v", set)
	}

	if _, err := repo.Source().Thumbnails(ctx, "missing"); !errors.Is(err, videos.ErrThumbnailNotFound) {
		t.Fatalf("expected ErrThumbnailNotFound from source, got %v", err)
	}
}

func TestPostgresEmbedRepository_CreateListAndMark(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresEmbedRepository(testPool)
	base := time.Now().UTC().Truncate(time.Millisecond)

	youtube := newEmbed("youtube", "heNGFmEQVq0", "fp-1", base)
	youtube.Options = map[string]string{"autoplay": "1"}
	vimeo := newEmbed("vimeo", "62085792", "fp-2", base.Add(time.Minute))

	for _, e := range []models.PublishedEmbed{youtube, vimeo} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("create embed %s: %v", e.ID, err)
		}
	}

	dup := newEmbed("youtube", "heNGFmEQVq0", "fp-1", base)
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate fingerprint, got %v", err)
	}

	all, err := repo.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("list embeds: %v", err)
	}
	if len(all) != 2 || all[0].ID != vimeo.ID || all[1].ID != youtube.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}
	if all[1].Options["autoplay"] != "1" {
		t.Fatalf("expected options to round trip, got %v", all[1].Options)
	}
	if all[1].Status != models.PublishStatusPending || all[1].PublishedAt != nil {
		t.Fatalf("expected pending embed, got %+v", all[1])
	}

	onlyYouTube, err := repo.List(ctx, "youtube", 10)
	if err != nil {
		t.Fatalf("list youtube embeds: %v", err)
	}
	if len(onlyYouTube) != 1 || onlyYouTube[0].ID != youtube.ID {
		t.Fatalf("unexpected filtered embeds: %+v", onlyYouTube)
	}

	if err := repo.MarkPublished(ctx, youtube.ID, "https://cdn.example.com/embeds/youtube/heNGFmEQVq0/x.html"); err != nil {
		t.Fatalf("mark published: %v", err)
	}
	if err := repo.MarkFailed(ctx, vimeo.ID); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	if err := repo.MarkFailed(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound marking missing embed, got %v", err)
	}

	unqueued := newEmbed("dailymotion", "x1b6849", "fp-3", base)
	if err := repo.Create(ctx, unqueued); err != nil {
		t.Fatalf("create embed: %v", err)
	}
	if err := repo.Delete(ctx, unqueued.ID); err != nil {
		t.Fatalf("delete embed: %v", err)
	}
	if err := repo.Create(ctx, newEmbed("dailymotion", "x1b6849", "fp-3", base)); err != nil {
		t.Fatalf("expected fingerprint to be reusable after delete, got %v", err)
	}
	if err := repo.Delete(ctx, uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting missing embed, got %v", err)
	}

	all, err = repo.List(ctx, "", 10)
	if err != nil {
		t.Fatalf("list embeds after marking: %v", err)
	}
	for _, e := range all {
		switch e.ID {
		case youtube.ID:
			if e.Status != models.PublishStatusPublished || e.Location == "" || e.PublishedAt == nil {
				t.Fatalf("expected published embed, got %+v", e)
			}
		case vimeo.ID:
			if e.Status != models.PublishStatusFailed || e.Location != "" {
				t.Fatalf("expected failed embed, got %+v", e)
			}
		}
	}
}

func newEmbed(provider, videoID, fingerprint string, createdAt time.Time) models.PublishedEmbed {
	return models.PublishedEmbed{
		ID:          uuid.NewString(),
		Provider:    provider,
		VideoID:     videoID,
		SourceURL:   "https://example.com/" + videoID,
		Fingerprint: fingerprint,
		HTML:        `<iframe src="//example.com"></iframe>`,
		CreatedAt:   createdAt,
	}
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		if _, err := pool.Exec(ctx, string(contents)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func resetDatabase(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	conn, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire connection: %v", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "TRUNCATE TABLE vimeo_thumbnails, published_embeds"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
