package index

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/waynote/waynote/internal/graph"
)

// opKind selects between the two index mutations a job can carry.
type opKind int

const (
	opSubmit opKind = iota
	opRemove
)

type job struct {
	kind opKind
	rec  Record
	id   string
}

// Projector keeps a Backend synchronized with note mutations. Submission is
// fire-and-forget: records are built synchronously on the caller's goroutine
// (the single mutation context owns the tree) and handed to one worker that
// talks to the backend. Worker failures are logged, never propagated to the
// mutation that caused them.
type Projector struct {
	backend Backend
	logger  *slog.Logger
	jobs    chan job
	wg      sync.WaitGroup
	once    sync.Once
}

// defaultQueueSize bounds pending index work before Enqueue starts dropping.
const defaultQueueSize = 128

// NewProjector starts a projector draining into the backend.
func NewProjector(backend Backend, logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Projector{
		backend: backend,
		logger:  logger,
		jobs:    make(chan job, defaultQueueSize),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Index projects a note into the search index. Record construction happens
// here, on the caller's goroutine; only the backend call is asynchronous.
func (p *Projector) Index(t *graph.Tree, n *graph.Note) {
	rec, err := BuildRecord(t, n)
	if err != nil {
		p.logger.Error("failed to build index record", "note", n.ID, "error", err)
		return
	}
	p.enqueue(job{kind: opSubmit, rec: rec})
}

// Remove deletes a note's record from the search index.
func (p *Projector) Remove(id uuid.UUID) {
	p.enqueue(job{kind: opRemove, id: id.String()})
}

// enqueue hands a job to the worker. A full queue drops the job with a log
// line rather than stalling the mutation that produced it; the index is a
// rebuildable projection, so a dropped update only costs freshness.
func (p *Projector) enqueue(j job) {
	select {
	case p.jobs <- j:
	default:
		p.logger.Warn("index queue full, dropping update", "note", j.noteID())
	}
}

// Close stops accepting work, drains the queue, and waits for the worker.
func (p *Projector) Close() {
	p.once.Do(func() {
		close(p.jobs)
	})
	p.wg.Wait()
}

func (p *Projector) run() {
	defer p.wg.Done()
	for j := range p.jobs {
		switch j.kind {
		case opSubmit:
			if err := p.backend.Submit(context.Background(), j.rec); err != nil {
				p.logger.Error("failed to index note", "note", j.rec.ID, "error", err)
			} else {
				p.logger.Info("indexed note", "note", j.rec.ID)
			}
		case opRemove:
			if err := p.backend.Remove(context.Background(), j.id); err != nil {
				p.logger.Error("failed to remove indexed note", "note", j.id, "error", err)
			} else {
				p.logger.Info("removed indexed note", "note", j.id)
			}
		}
	}
}

func (j job) noteID() string {
	if j.kind == opRemove {
		return j.id
	}
	return j.rec.ID
}
