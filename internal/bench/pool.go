package bench

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// backendJob is one unit of work for the pool: run a full benchmark pass
// against one book backend.
type backendJob struct {
	name string
	run  func() backendResult
}

// jobPool is a bounded worker pool: instead of an unbounded connection queue
// it drains a fixed, known-size batch of backendJobs (one per Book
// variant) and reports each result back over a channel, supervised by a
// tomb.Tomb so a cancelled run never leaves the pool hanging. Panics are
// not recovered.
type jobPool struct {
	n       int
	jobs    chan backendJob
	results chan backendResult
}

func newJobPool(size int, jobs []backendJob) *jobPool {
	p := &jobPool{
		n:       size,
		jobs:    make(chan backendJob, len(jobs)),
		results: make(chan backendResult, len(jobs)),
	}
	for _, j := range jobs {
		p.jobs <- j
	}
	close(p.jobs)
	return p
}

// run starts n workers under t, each pulling jobs until the channel is
// drained, and returns once every job has reported a result.
func (p *jobPool) run(t *tomb.Tomb) []backendResult {
	want := cap(p.results)
	log.Info().Int("workers", p.n).Int("jobs", want).Msg("starting backend benchmark pool")

	for i := 0; i < p.n; i++ {
		t.Go(func() error {
			return p.worker(t)
		})
	}

	out := make([]backendResult, 0, want)
	for len(out) < want {
		select {
		case <-t.Dying():
			return out
		case r := <-p.results:
			out = append(out, r)
		}
	}
	return out
}

func (p *jobPool) worker(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case job, ok := <-p.jobs:
			if !ok {
				return nil
			}
			log.Debug().Str("backend", job.name).Msg("running backend benchmark")
			p.results <- job.run()
		}
	}
}
