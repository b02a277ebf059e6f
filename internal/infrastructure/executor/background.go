package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/doeshing/nlsh-go/internal/domain"
	"github.com/doeshing/nlsh-go/internal/ports"
)

type backgroundJob struct {
	done   chan struct{}
	result domain.CommandResult
}

// BackgroundPool tracks asynchronous executions by job id. Ids are issued
// monotonically as "job_1", "job_2", and so on.
type BackgroundPool struct {
	runner *Runner

	mu   sync.Mutex
	next int
	jobs map[string]*backgroundJob
}

// NewBackgroundPool wraps a runner for asynchronous use.
func NewBackgroundPool(runner *Runner) *BackgroundPool {
	return &BackgroundPool{
		runner: runner,
		jobs:   make(map[string]*backgroundJob),
	}
}

// ExecuteBackground starts the command in a goroutine and returns its id
// immediately.
func (p *BackgroundPool) ExecuteBackground(command string, cfg domain.ExecutionConfig) string {
	p.mu.Lock()
	p.next++
	id := fmt.Sprintf("job_%d", p.next)
	job := &backgroundJob{done: make(chan struct{})}
	p.jobs[id] = job
	p.mu.Unlock()

	go func() {
		job.result = p.runner.Execute(context.Background(), command, cfg)
		close(job.done)
	}()
	return id
}

// PollBackground returns the result of a finished job and removes it from
// the pool. It never blocks; unknown ids and still-running jobs both report
// ok=false.
func (p *BackgroundPool) PollBackground(jobID string) (domain.CommandResult, bool) {
	p.mu.Lock()
	job, exists := p.jobs[jobID]
	p.mu.Unlock()
	if !exists {
		return domain.CommandResult{}, false
	}

	select {
	case <-job.done:
		p.mu.Lock()
		delete(p.jobs, jobID)
		p.mu.Unlock()
		return job.result, true
	default:
		return domain.CommandResult{}, false
	}
}

// CancelBackground drops the bookkeeping entry for a job. The spawned
// process is not signalled; its result is simply discarded.
func (p *BackgroundPool) CancelBackground(jobID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.jobs[jobID]; !exists {
		return false
	}
	delete(p.jobs, jobID)
	return true
}

// ActiveJobs lists the ids of jobs not yet polled or cancelled.
func (p *BackgroundPool) ActiveJobs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.jobs))
	for id := range p.jobs {
		ids = append(ids, id)
	}
	return ids
}

var _ ports.BackgroundRunner = (*BackgroundPool)(nil)
