package upload

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
	"github.com/google/uuid"
)

// ErrBusy is returned when a pipeline already owns an in-flight upload.
var ErrBusy = errors.New("an upload is already in progress")

// Sender performs the network half of a submission.
type Sender interface {
	Create(ctx context.Context, res models.Resource, p *Payload, onProgress ProgressFunc) (models.Record, error)
	Update(ctx context.Context, res models.Resource, id string, p *Payload, onProgress ProgressFunc) (models.Record, error)
}

// Pending is the state of the upload currently in flight.
type Pending struct {
	ID       string
	FileName string
	Preview  string
	Progress int
}

// Pipeline encodes submissions and hands them to a Sender. It owns at most
// one pending upload at a time.
type Pipeline struct {
	sender Sender
	logger logging.Logger

	mu      sync.Mutex
	pending *Pending
}

func NewPipeline(sender Sender, logger logging.Logger) *Pipeline {
	return &Pipeline{sender: sender, logger: logger.With("component", "upload")}
}

// Submit builds the payload and sends it: a create when id is empty, an
// update of id otherwise. On an update a nil file keeps the stored binary.
func (p *Pipeline) Submit(ctx context.Context, res models.Resource, id string, fields []Field, file *File, onProgress ProgressFunc) (models.Record, error) {
	payload, err := BuildPayload(fields, res.FileField, file)
	if err != nil {
		return models.Record{}, err
	}
	return p.Send(ctx, res, id, payload, file, onProgress)
}

// Send transmits an already built payload. file only feeds the pending
// upload description and may be nil.
func (p *Pipeline) Send(ctx context.Context, res models.Resource, id string, payload *Payload, file *File, onProgress ProgressFunc) (models.Record, error) {
	pending := &Pending{ID: uuid.NewString()}
	if file != nil {
		pending.FileName = file.Name
		pending.Preview = file.Preview
	}

	p.mu.Lock()
	if p.pending != nil {
		p.mu.Unlock()
		return models.Record{}, ErrBusy
	}
	p.pending = pending
	p.mu.Unlock()

	var (
		settledMu sync.Mutex
		settled   bool
		last      = -1
	)
	forward := func(pct int) {
		settledMu.Lock()
		defer settledMu.Unlock()
		if settled || pct < last {
			return
		}
		last = pct
		p.mu.Lock()
		if p.pending == pending {
			pending.Progress = pct
		}
		p.mu.Unlock()
		if onProgress != nil {
			onProgress(pct)
		}
	}

	defer func() {
		settledMu.Lock()
		settled = true
		settledMu.Unlock()

		p.mu.Lock()
		p.pending = nil
		p.mu.Unlock()
	}()

	log := p.logger.With("resource", res.Name, "upload_id", pending.ID)
	text, binary := payload.Count()
	log.Debug(ctx, "upload started", "bytes", payload.Len(), "text_parts", text, "binary_parts", binary)

	var (
		rec models.Record
		err error
	)
	if id == "" {
		rec, err = p.sender.Create(ctx, res, payload, forward)
	} else {
		rec, err = p.sender.Update(ctx, res, id, payload, forward)
	}
	if err != nil {
		log.Warn(ctx, "upload failed", "error", err)
		return rec, err
	}
	log.Debug(ctx, "upload finished")
	return rec, nil
}

// Pending returns a copy of the in-flight upload, if any.
func (p *Pipeline) Pending() (Pending, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending == nil {
		return Pending{}, false
	}
	return *p.pending, true
}
