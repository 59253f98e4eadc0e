package videos

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vidfriends/videoembed/internal/models"
)

type storageStub struct {
	mu    sync.Mutex
	saved map[string]string
	err   error
}

func (s *storageStub) Save(_ context.Context, key string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saved == nil {
		s.saved = make(map[string]string)
	}
	s.saved[key] = string(data)
	return "https://cdn.example.com/" + key, nil
}

type updaterStub struct {
	published chan [2]string
	failed    chan string
}

func newUpdaterStub() *updaterStub {
	return &updaterStub{published: make(chan [2]string, 4), failed: make(chan string, 4)}
}

func (u *updaterStub) MarkPublished(_ context.Context, id, location string) error {
	u.published <- [2]string{id, location}
	return nil
}

func (u *updaterStub) MarkFailed(_ context.Context, id string) error {
	u.failed <- id
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherUploadsFragment(t *testing.T) {
	storage := &storageStub{}
	updater := newUpdaterStub()
	publisher := NewPublisher(storage, updater, PublisherConfig{QueueSize: 1, Workers: 1}, quietLogger())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = publisher.Shutdown(ctx)
	}()

	embed := models.PublishedEmbed{ID: "e1", Provider: "youtube", VideoID: "heNGFmEQVq0", HTML: "<iframe></iframe>"}
	if err := publisher.Enqueue(context.Background(), embed); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case got := <-updater.published:
		if got[0] != "e1" || !strings.HasPrefix(got[1], "https://cdn.example.com/embeds/youtube/heNGFmEQVq0/") || !strings.HasSuffix(got[1], ".html") {
			t.Fatalf("unexpected publish record %v", got)
		}
	case id := <-updater.failed:
		t.Fatalf("unexpected failure for %s", id)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for upload")
	}

	storage.mu.Lock()
	defer storage.mu.Unlock()
	if len(storage.saved) != 1 {
		t.Fatalf("expected one object got %d", len(storage.saved))
	}
	for _, body := range storage.saved {
		if body != "<iframe></iframe>" {
			t.Fatalf("unexpected body %q", body)
		}
	}
}

func TestPublisherRecordsFailure(t *testing.T) {
	updater := newUpdaterStub()
	publisher := NewPublisher(&storageStub{err: errors.New("boom")}, updater, PublisherConfig{}, quietLogger())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = publisher.Shutdown(ctx)
	}()

	if err := publisher.Enqueue(context.Background(), models.PublishedEmbed{ID: "e2", Provider: "vimeo", VideoID: "1"}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	select {
	case id := <-updater.failed:
		if id != "e2" {
			t.Fatalf("unexpected failed id %s", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for failure record")
	}
}

func TestPublisherRejectsAfterShutdown(t *testing.T) {
	publisher := NewPublisher(&storageStub{}, newUpdaterStub(), PublisherConfig{}, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := publisher.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := publisher.Shutdown(ctx); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}

	if err := publisher.Enqueue(context.Background(), models.PublishedEmbed{ID: "e3"}); !errors.Is(err, ErrPublisherClosed) {
		t.Fatalf("expected ErrPublisherClosed got %v", err)
	}
}

func TestFragmentKey(t *testing.T) {
	key := FragmentKey("dailymotion", "x1b6849")
	if !strings.HasPrefix(key, "embeds/dailymotion/x1b6849/") || !strings.HasSuffix(key, ".html") {
		t.Fatalf("unexpected key %q", key)
	}
	if FragmentKey("dailymotion", "x1b6849") == key {
		t.Fatal("expected unique keys")
	}
}

func TestPublisherWithoutStorage(t *testing.T) {
	publisher := NewPublisher(nil, newUpdaterStub(), PublisherConfig{}, quietLogger())
	defer publisher.Shutdown(context.Background())

	if err := publisher.Enqueue(context.Background(), models.PublishedEmbed{ID: "e1"}); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}

func TestPublisherEnabled(t *testing.T) {
	var nilPublisher *Publisher
	if nilPublisher.Enabled() {
		t.Fatal("nil publisher must not be enabled")
	}
	if NewPublisher(nil, newUpdaterStub(), PublisherConfig{}, quietLogger()).Enabled() {
		t.Fatal("publisher without storage must not be enabled")
	}

	publisher := NewPublisher(&storageStub{}, newUpdaterStub(), PublisherConfig{}, quietLogger())
	if !publisher.Enabled() {
		t.Fatal("expected publisher with storage to be enabled")
	}
	if err := publisher.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if publisher.Enabled() {
		t.Fatal("expected publisher to be disabled after shutdown")
	}
}
