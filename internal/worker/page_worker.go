package worker

import (
	"context"
	"sync"

	"github.com/Xunop/book-faker/internal/log"
	"github.com/Xunop/book-faker/internal/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("worker pool closed")

// PageGenerator produces one page of books.
type PageGenerator interface {
	Generate(req model.GenerationRequest) ([]*model.Book, error)
}

type PagePool struct {
	queue     chan model.Job
	done      chan struct{}
	closeOnce sync.Once
}

var _ WorkPool = (*PagePool)(nil)

func NewPagePool(gen PageGenerator, size int) *PagePool {
	if size <= 0 {
		size = 1
	}
	pool := &PagePool{
		queue: make(chan model.Job),
		done:  make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		var worker Worker = &PageWorker{id: i, gen: gen}
		go worker.Run(pool.queue, pool.done)
	}

	return pool
}

// Implement WorkPool interface
func (p *PagePool) Push(ctx context.Context, job model.Job) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	select {
	case p.queue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return ErrPoolClosed
	}
}

// Close stops the workers. Later pushes fail with ErrPoolClosed.
func (p *PagePool) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

// GeneratePages generates count consecutive pages starting at from and
// returns their books in page order. The first failing page aborts the call
// and stops handing out the remaining pages.
func (p *PagePool) GeneratePages(ctx context.Context, req model.GenerationRequest, from, count int) ([]*model.Book, error) {
	if from < 0 {
		return nil, errors.Errorf("page must not be negative, got %d", from)
	}
	if count <= 0 {
		return nil, errors.Errorf("page count must be positive, got %d", count)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so workers never block on an abandoned call.
	results := make(chan model.JobResult, count)
	pushErr := make(chan error, 1)
	go func() {
		for i := 0; i < count; i++ {
			job := model.Job{
				ID:      i,
				Request: req.WithPage(from + i),
				Reply:   results,
			}
			if err := p.Push(ctx, job); err != nil {
				pushErr <- err
				return
			}
		}
	}()

	pages := make([][]*model.Book, count)
	for received := 0; received < count; received++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err := <-pushErr:
			return nil, err
		case res := <-results:
			if res.Err != nil {
				return nil, errors.Wrapf(res.Err, "page %d", res.Job.Request.Page)
			}
			pages[res.Job.ID] = res.Books
		}
	}

	books := make([]*model.Book, 0, len(pages)*len(pages[0]))
	for _, page := range pages {
		books = append(books, page...)
	}
	return books, nil
}

type PageWorker struct {
	id  int
	gen PageGenerator
}

var _ Worker = (*PageWorker)(nil)

// Run generates pages until done is closed.
func (w *PageWorker) Run(c <-chan model.Job, done <-chan struct{}) {
	log.Debug("PageWorker is running", zap.Int("worker_id", w.id))
	defer log.Debug("PageWorker stopped", zap.Int("worker_id", w.id))

	for {
		var job model.Job
		select {
		case <-done:
			return
		case job = <-c:
		}

		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int("job_id", job.ID),
			zap.String("request", job.Request.Key()))

		books, err := w.gen.Generate(job.Request)
		if err != nil {
			log.Error("Page generation failed",
				zap.Int("worker_id", w.id),
				zap.String("request", job.Request.Key()),
				zap.Error(err))
		}

		job.Reply <- model.JobResult{Job: job, Books: books, Err: err}
	}
}
