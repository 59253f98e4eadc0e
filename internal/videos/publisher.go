package videos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidfriends/videoembed/internal/logging"
	"github.com/vidfriends/videoembed/internal/models"
)

// FragmentStorage persists rendered markup and returns its public location.
type FragmentStorage interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
}

// PublishStatusUpdater records the outcome of an upload.
type PublishStatusUpdater interface {
	MarkPublished(ctx context.Context, id, location string) error
	MarkFailed(ctx context.Context, id string) error
}

// PublisherConfig controls the concurrency characteristics of the publisher.
type PublisherConfig struct {
	QueueSize     int
	Workers       int
	UploadTimeout time.Duration
}

// Publisher uploads rendered embed fragments to storage on a worker pool.
type Publisher struct {
	storage FragmentStorage
	updater PublishStatusUpdater
	logger  *slog.Logger
	timeout time.Duration

	jobs   chan models.PublishedEmbed
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// ErrPublisherClosed is returned by Enqueue after Shutdown.
var ErrPublisherClosed = errors.New("publisher closed")

// NewPublisher starts cfg.Workers goroutines draining the upload queue.
func NewPublisher(storage FragmentStorage, updater PublishStatusUpdater, cfg PublisherConfig, logger *slog.Logger) *Publisher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Publisher{
		storage: storage,
		updater: updater,
		logger:  logger,
		timeout: cfg.UploadTimeout,
		jobs:    make(chan models.PublishedEmbed, cfg.QueueSize),
		ctx:     ctx,
		cancel:  cancel,
	}

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker()
	}

	return p
}

// FragmentKey is the object key of a published fragment:
// embeds/<provider>/<videoId>/<uuid>.html.
func FragmentKey(provider, videoID string) string {
	return path.Join("embeds", provider, videoID, uuid.NewString()+".html")
}

// Enabled reports whether the publisher has storage and still accepts work.
func (p *Publisher) Enabled() bool {
	if p == nil || p.storage == nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	default:
		return true
	}
}

// Enqueue schedules the upload of embed.HTML.
func (p *Publisher) Enqueue(ctx context.Context, embed models.PublishedEmbed) error {
	if p.storage == nil {
		return ErrStorageUnavailable
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPublisherClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPublisherClosed
	case p.jobs <- embed:
		return nil
	}
}

// Shutdown stops accepting work and waits for the workers to exit. Jobs still
// queued may be dropped and stay pending.
func (p *Publisher) Shutdown(ctx context.Context) error {
	p.once.Do(func() {
		p.cancel()
		close(p.jobs)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (p *Publisher) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.publish(job)
		}
	}
}

func (p *Publisher) publish(job models.PublishedEmbed) {
	logger := p.logger.With("embedId", job.ID, "provider", job.Provider, "videoId", job.VideoID)

	if p.storage == nil || p.updater == nil {
		logger.Error("publisher missing dependencies", "hasStorage", p.storage != nil, "hasUpdater", p.updater != nil)
		return
	}

	ctx, cancel := context.WithTimeout(logging.WithLogger(context.Background(), logger), p.timeout)
	defer cancel()

	ctx, span := logging.StartSpan(ctx, "publish fragment")
	defer span.End()

	location, err := p.storage.Save(ctx, FragmentKey(job.Provider, job.VideoID), strings.NewReader(job.HTML))
	if err != nil {
		span.Fail(err)
		logger.Error("fragment upload failed", "error", err)
		p.recordFailure(logger, job.ID)
		return
	}

	if err := p.recordSuccess(job.ID, location); err != nil {
		span.Fail(err)
		logger.Error("mark embed published", "error", err)
		p.recordFailure(logger, job.ID)
	}
}

func (p *Publisher) recordFailure(logger *slog.Logger, id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.updater.MarkFailed(ctx, id); err != nil {
		logger.Error("record publish failure", "error", err)
	}
}

func (p *Publisher) recordSuccess(id, location string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.updater.MarkPublished(ctx, id, location); err != nil {
		return fmt.Errorf("mark %s published: %w", id, err)
	}
	return nil
}
