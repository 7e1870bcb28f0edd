package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "careerai/internal/errors"
	"careerai/internal/logging"
	"careerai/internal/metrics"
	"careerai/internal/models"
	"careerai/internal/objectstore"
	"careerai/internal/queue"
	"careerai/internal/storage"
)

const maxFetchRetries = 3

type Reviewer interface {
	ReviewDocument(ctx context.Context, data []byte, model, language string) (*models.Report, error)
}

// JobProcessor runs queued ATS reviews: it downloads the resume, reviews
// it and records the outcome on the job row.
type JobProcessor struct {
	db       storage.JobStore
	queue    queue.Consumer
	store    objectstore.Downloader
	s3Bucket string
	reviewer Reviewer
	logger   *logging.Logger
	metrics  *metrics.JobMetrics

	backoff time.Duration
}

func NewJobProcessor(db storage.JobStore, q queue.Consumer, store objectstore.Downloader, s3Bucket string, reviewer Reviewer, logger *logging.Logger, m *metrics.JobMetrics) *JobProcessor {
	if logger == nil {
		logger = logging.Default()
	}
	return &JobProcessor{
		db:       db,
		queue:    q,
		store:    store,
		s3Bucket: s3Bucket,
		reviewer: reviewer,
		logger:   logger,
		metrics:  m,
		backoff:  time.Second,
	}
}

// Run consumes jobs until ctx is cancelled.
func (p *JobProcessor) Run(ctx context.Context) {
	p.logger.Info("job processor has started, waiting for jobs")

	for {
		if ctx.Err() != nil {
			p.logger.Info("job processor stopping")
			return
		}

		jobID, err := p.queue.Consume(ctx)
		if errors.Is(err, queue.ErrEmpty) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.Error("error consuming job from queue", "error", err)
			sleep(ctx, 5*time.Second)
			continue
		}

		if err := p.ProcessJob(ctx, jobID); err != nil {
			p.logger.Error("job processing failed", "job_id", jobID, "error", err)
		}
	}
}

// ProcessJob reviews a single job. Review failures are stored on the job
// and are not retried.
func (p *JobProcessor) ProcessJob(ctx context.Context, jobID uuid.UUID) error {
	logger := p.logger.With("job_id", jobID)
	logger.Info("processing job")

	job, err := p.fetchWithRetry(ctx, jobID)
	if err != nil {
		return err
	}

	if job.Status == models.StatusCompleted {
		logger.Warn("job already completed, skipping")
		return nil
	}

	if err := p.db.MarkProcessing(ctx, jobID); err != nil {
		return fmt.Errorf("failed to mark job %s processing: %w", jobID, err)
	}

	resume, err := p.store.Download(ctx, p.s3Bucket, job.ObjectKey)
	if err != nil {
		return p.fail(ctx, jobID, fmt.Errorf("failed downloading resume: %w", err))
	}

	report, err := p.reviewer.ReviewDocument(ctx, resume, job.Model, job.Language)
	if err != nil {
		return p.fail(ctx, jobID, err)
	}

	if err := p.db.Complete(ctx, jobID, report.ScannedText, report.Analysis); err != nil {
		return fmt.Errorf("failed to save results for job %s: %w", jobID, err)
	}

	p.metrics.ObserveJob(models.StatusCompleted.String())
	logger.Info("job completed", "overall_score", report.Scores.Overall)
	return nil
}

func (p *JobProcessor) fail(ctx context.Context, jobID uuid.UUID, cause error) error {
	p.metrics.ObserveJob(models.StatusFailed.String())
	p.logger.Warn("job failed", "job_id", jobID, "kind", apperrors.KindOf(cause).String(), "error", cause)

	if err := p.db.Fail(ctx, jobID, cause.Error()); err != nil {
		return fmt.Errorf("failed to record failure for job %s: %w", jobID, errors.Join(cause, err))
	}
	return cause
}

func (p *JobProcessor) fetchWithRetry(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	var lastErr error

	for i := 0; i < maxFetchRetries; i++ {
		job, err := p.db.Get(ctx, jobID)
		if err == nil {
			return job, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err

		p.logger.Warn("retrying job fetch", "job_id", jobID, "attempt", i+1, "error", err)

		// exponential backoff
		if !sleep(ctx, p.backoff*time.Duration(1<<i)) {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("failed to fetch job %s after %d retries: %w", jobID, maxFetchRetries, lastErr)
}

func isRetryable(err error) bool {
	switch {
	case errors.Is(err, storage.ErrJobNotFound),
		errors.Is(err, apperrors.ErrPermanentFailure),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
