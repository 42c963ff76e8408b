package model

// Job asks a worker to generate one page. The worker answers on Reply.
type Job struct {
	ID      int
	Request GenerationRequest
	Reply   chan<- JobResult `json:"-"`
}

// JobResult carries the outcome of a Job back to the pool.
type JobResult struct {
	Job   Job
	Books []*Book
	Err   error
}
