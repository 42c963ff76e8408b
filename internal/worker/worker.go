package worker

import (
	"github.com/Xunop/book-faker/internal/model"
)

type Worker interface {
	// Run handles jobs from c until done is closed.
	Run(c <-chan model.Job, done <-chan struct{})
}
