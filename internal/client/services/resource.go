// Package services ties the engine parts together per screen: one
// ResourceService per admin module, the public MembershipForm and the admin
// SessionService.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/nehruadmin/internal/client/client"
	"github.com/dmitrijs2005/nehruadmin/internal/client/confirm"
	"github.com/dmitrijs2005/nehruadmin/internal/client/guard"
	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/notify"
	"github.com/dmitrijs2005/nehruadmin/internal/client/store"
	"github.com/dmitrijs2005/nehruadmin/internal/client/upload"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
)

var (
	ErrUnknownRecord = errors.New("no such record")
	ErrReadOnly      = errors.New("resource is read-only")
	ErrNotApprovable = errors.New("resource does not support approval")
	ErrClosed        = errors.New("module closed")
)

// ResourceService is the admin engine for one resource: it owns the
// resource's list, its submission guard and its delete confirmation gate.
//
// The list only changes after the server confirmed an operation. Every
// failure is reported to the notifier exactly once. After Close, results of
// operations still in flight are dropped.
type ResourceService struct {
	res      models.Resource
	client   client.Client
	list     *store.List
	pipeline *upload.Pipeline
	guard    *guard.Guard
	gate     *confirm.Gate
	notifier notify.Notifier
	logger   logging.Logger
	closed   atomic.Bool
}

func NewResourceService(res models.Resource, c client.Client, n notify.Notifier, logger logging.Logger) *ResourceService {
	logger = logger.With("resource", res.Name)
	s := &ResourceService{
		res:      res,
		client:   c,
		list:     store.New(logger),
		pipeline: upload.NewPipeline(c, logger),
		guard:    guard.New(guard.RulesFor(res)),
		notifier: n,
		logger:   logger,
	}
	s.gate = confirm.NewGate(s.remove)
	return s
}

func (s *ResourceService) Resource() models.Resource { return s.res }

// Records returns the current list in display order.
func (s *ResourceService) Records() []models.Record { return s.list.Records() }

func (s *ResourceService) Record(id string) (models.Record, bool) { return s.list.Get(id) }

// InFlight reports whether a create or update is outstanding.
func (s *ResourceService) InFlight() bool { return s.guard.InFlight() }

// Upload returns the pending upload of the outstanding submission.
func (s *ResourceService) Upload() (upload.Pending, bool) { return s.pipeline.Pending() }

// Fetch replaces the list with the server's.
func (s *ResourceService) Fetch(ctx context.Context) error {
	recs, err := s.client.List(ctx, s.res)
	if s.closed.Load() {
		return ErrClosed
	}
	if err != nil {
		s.fail(ctx, "fetch", err)
		return err
	}
	s.list.ReplaceAll(recs)
	s.logger.Info(ctx, "records loaded", "count", len(recs))
	return nil
}

// Create submits a new record. form.Create is forced on.
func (s *ResourceService) Create(ctx context.Context, form guard.Form, onProgress upload.ProgressFunc) (models.Record, error) {
	if s.res.ReadOnly {
		s.fail(ctx, "create", ErrReadOnly)
		return models.Record{}, ErrReadOnly
	}
	form.Create = true

	var created models.Record
	err := s.submit(ctx, form, func(ctx context.Context) error {
		rec, err := s.pipeline.Submit(ctx, s.res, "", form.Fields, form.File, onProgress)
		if s.closed.Load() {
			return ErrClosed
		}
		if errors.Is(err, client.ErrNoRecord) {
			s.logger.Info(ctx, "create reply carried no record, reloading")
			s.notifier.Notify(notify.Success(s.res.Label + " created"))
			s.reload(ctx)
			return nil
		}
		if err != nil {
			return err
		}

		rec = withSubmitted(rec, models.Record{}, form.Fields)
		if err := s.list.InsertOne(rec); err != nil {
			// the server handed out an id we already list; resync
			s.notifier.Notify(notify.Success(s.res.Label + " created"))
			s.reload(ctx)
			return nil
		}
		created = rec
		s.notifier.Notify(notify.Success(s.res.Label + " created"))
		return nil
	})
	if err != nil {
		return models.Record{}, err
	}
	return created, nil
}

// Update submits changes to record id. A nil form.File keeps the stored
// binary.
func (s *ResourceService) Update(ctx context.Context, id string, form guard.Form, onProgress upload.ProgressFunc) (models.Record, error) {
	if s.res.ReadOnly {
		s.fail(ctx, "update", ErrReadOnly)
		return models.Record{}, ErrReadOnly
	}
	form.Create = false

	var updated models.Record
	err := s.submit(ctx, form, func(ctx context.Context) error {
		rec, err := s.pipeline.Submit(ctx, s.res, id, form.Fields, form.File, onProgress)
		if s.closed.Load() {
			return ErrClosed
		}
		if errors.Is(err, client.ErrNoRecord) {
			s.notifier.Notify(notify.Success(s.res.Label + " updated"))
			s.reload(ctx)
			return nil
		}
		if err != nil {
			return err
		}

		prev, _ := s.list.Get(id)
		rec = withSubmitted(rec, prev, form.Fields)
		s.list.ReplaceOne(id, rec)
		updated = rec
		s.notifier.Notify(notify.Success(s.res.Label + " updated"))
		return nil
	})
	if err != nil {
		return models.Record{}, err
	}
	return updated, nil
}

// submit runs dispatch through the guard and reports the outcome.
func (s *ResourceService) submit(ctx context.Context, form guard.Form, dispatch func(ctx context.Context) error) error {
	dec, err := s.guard.Submit(ctx, form, dispatch)
	for _, w := range dec.Warnings {
		s.notifier.Notify(notify.Warning(w))
	}
	if errors.Is(err, ErrClosed) {
		return err
	}
	if err != nil {
		s.fail(ctx, "submit", err)
	}
	return err
}

// RequestDelete arms the delete confirmation for id, replacing any pending one.
func (s *ResourceService) RequestDelete(id string) (models.Record, error) {
	rec, ok := s.list.Get(id)
	if !ok {
		s.fail(context.Background(), "delete", fmt.Errorf("%w: %s", ErrUnknownRecord, id))
		return models.Record{}, ErrUnknownRecord
	}
	s.gate.Request(rec)
	return rec, nil
}

// PendingDelete returns the record awaiting confirmation.
func (s *ResourceService) PendingDelete() (models.Record, bool) { return s.gate.Pending() }

// ConfirmDelete deletes the record awaiting confirmation.
func (s *ResourceService) ConfirmDelete(ctx context.Context) error {
	err := s.gate.Accept(ctx)
	if errors.Is(err, confirm.ErrNotArmed) {
		s.fail(ctx, "delete", err)
	}
	return err
}

// CancelDelete drops the pending confirmation without deleting anything.
func (s *ResourceService) CancelDelete() bool { return s.gate.Dismiss() }

func (s *ResourceService) remove(ctx context.Context, target models.Record) error {
	err := s.client.Remove(ctx, s.res, target.ID)
	if s.closed.Load() {
		return ErrClosed
	}
	if err != nil {
		s.fail(ctx, "delete", err)
		return err
	}
	s.list.RemoveOne(target.ID)
	s.notifier.Notify(notify.Success(s.res.Label + " deleted"))
	return nil
}

// Approve approves a membership application and marks it approved locally.
func (s *ResourceService) Approve(ctx context.Context, id string) (*client.Approval, error) {
	if !s.res.Approvable {
		s.fail(ctx, "approve", ErrNotApprovable)
		return nil, ErrNotApprovable
	}
	a, err := s.client.Approve(ctx, s.res, id)
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if err != nil {
		s.fail(ctx, "approve", err)
		return nil, err
	}

	if rec, ok := s.list.Get(id); ok {
		patch := map[string]any{"is_approved": true}
		if a.PDFURL != "" {
			patch["license_pdf"] = a.PDFURL
		}
		s.list.ReplaceOne(id, rec.With(patch))
	}

	msg := a.Message
	if msg == "" {
		msg = s.res.Label + " approved"
	}
	n := notify.Success(msg)
	n.Link = a.WhatsAppLink
	s.notifier.Notify(n)
	return a, nil
}

// Close detaches the service from the screen. Replies arriving afterwards
// do not touch the list or emit notifications.
func (s *ResourceService) Close() {
	s.closed.Store(true)
	s.gate.Dismiss()
}

// reload resyncs the list after a mutation whose reply could not be applied
// directly. A failure is reported on its own.
func (s *ResourceService) reload(ctx context.Context) {
	recs, err := s.client.List(ctx, s.res)
	if s.closed.Load() {
		return
	}
	if err != nil {
		s.fail(ctx, "reload", err)
		return
	}
	s.list.ReplaceAll(recs)
}

func (s *ResourceService) fail(ctx context.Context, op string, err error) {
	s.logger.Warn(ctx, op+" failed", "error", err)
	report(s.notifier, err)
}

// report emits the single notification for a failure.
func report(n notify.Notifier, err error) {
	var ve *guard.ValidationError
	if errors.As(err, &ve) {
		n.Notify(notify.Warning(ve.Error()))
		return
	}
	n.Notify(notify.Failure(client.Describe(err)))
}

// withSubmitted completes a possibly partial server record: prev first,
// then the submitted text fields, then whatever the server returned.
func withSubmitted(rec, prev models.Record, fields []upload.Field) models.Record {
	merged := make(map[string]any, len(prev.Fields)+len(fields)+len(rec.Fields))
	for k, v := range prev.Fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Name] = f.Value
	}
	for k, v := range rec.Fields {
		merged[k] = v
	}
	return models.Record{ID: rec.ID, Fields: merged}
}
