package worker // import "github.com/Xunop/book-faker/internal/worker"

import (
	"context"

	"github.com/Xunop/book-faker/internal/model"
)

type WorkPool interface {
	// Push blocks until a worker takes the job, ctx is done or the pool closes.
	Push(ctx context.Context, job model.Job) error
}
