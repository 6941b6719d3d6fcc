package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/nehruadmin/internal/client/client"
	"github.com/dmitrijs2005/nehruadmin/internal/client/guard"
	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/notify"
	"github.com/dmitrijs2005/nehruadmin/internal/client/upload"
	"github.com/dmitrijs2005/nehruadmin/internal/client/validate"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
)

const phoneField = "phone"

// MembershipForm is the public membership application form. The phone
// number is checked for uniqueness while it is typed; submission goes
// through the guard and the upload pipeline.
type MembershipForm struct {
	res      models.Resource
	pipeline *upload.Pipeline
	guard    *guard.Guard
	phone    *validate.Validator
	notifier notify.Notifier
	logger   logging.Logger

	mu     sync.Mutex
	values map[string]string
	photo  *upload.File
	closed bool
}

// NewMembershipForm builds the form for res (normally the licenses
// resource). ctx bounds the live checks.
func NewMembershipForm(ctx context.Context, res models.Resource, c client.Client, n notify.Notifier, logger logging.Logger) *MembershipForm {
	logger = logger.With("component", "membership")

	checker := validate.CheckerFunc(func(ctx context.Context, field, value string) (bool, error) {
		return c.CheckUnique(ctx, res, field, value)
	})
	phone := validate.New(ctx, phoneField, checker, validate.PhoneComplete,
		validate.WithNormalizer(validate.NormalizePhone), validate.WithLogger(logger))

	rules := guard.RulesFor(res)
	rules.Unique = []guard.UniqueGate{{Field: phoneField, Source: phone}}

	return &MembershipForm{
		res:      res,
		pipeline: upload.NewPipeline(c, logger),
		guard:    guard.New(rules),
		phone:    phone,
		notifier: n,
		logger:   logger,
		values:   map[string]string{},
	}
}

// Fields lists the text fields in the order they are submitted.
func (f *MembershipForm) Fields() []string { return f.res.Fields }

// Set updates a text field; a phone change triggers the live check.
func (f *MembershipForm) Set(field, value string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.values[field] = value
	f.mu.Unlock()

	if field == phoneField {
		f.phone.Input(value)
	}
}

func (f *MembershipForm) Value(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[field]
}

// SetPhoto selects the applicant's photo; nil clears the selection.
func (f *MembershipForm) SetPhoto(file *upload.File) {
	f.mu.Lock()
	f.photo = file
	f.mu.Unlock()
}

func (f *MembershipForm) Photo() *upload.File {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.photo
}

// PhoneState is the live check state of the phone field.
func (f *MembershipForm) PhoneState() models.ValidationState { return f.phone.State() }

// OnPhoneChange subscribes to phone check transitions.
func (f *MembershipForm) OnPhoneChange(fn func(models.ValidationState)) { f.phone.OnChange(fn) }

// WaitChecks blocks until outstanding phone checks have returned.
func (f *MembershipForm) WaitChecks() { f.phone.Wait() }

// InFlight reports whether a submission is outstanding.
func (f *MembershipForm) InFlight() bool { return f.guard.InFlight() }

// Upload returns the pending upload of the outstanding submission.
func (f *MembershipForm) Upload() (upload.Pending, bool) { return f.pipeline.Pending() }

func (f *MembershipForm) form() guard.Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	fields := make([]upload.Field, 0, len(f.res.Fields))
	for _, name := range f.res.Fields {
		fields = append(fields, upload.Field{Name: name, Value: f.values[name]})
	}
	return guard.Form{Fields: fields, File: f.photo, Create: true}
}

// Submit sends the application. On success the form is cleared.
func (f *MembershipForm) Submit(ctx context.Context, onProgress upload.ProgressFunc) (models.Record, error) {
	form := f.form()

	var created models.Record
	dec, err := f.guard.Submit(ctx, form, func(ctx context.Context) error {
		rec, err := f.pipeline.Submit(ctx, f.res, "", form.Fields, form.File, onProgress)
		if f.isClosed() {
			return ErrClosed
		}
		if err != nil && !errors.Is(err, client.ErrNoRecord) {
			return err
		}
		created = rec
		return nil
	})
	for _, w := range dec.Warnings {
		f.notifier.Notify(notify.Warning(w))
	}
	if errors.Is(err, ErrClosed) {
		return models.Record{}, err
	}
	if err != nil {
		f.logger.Warn(ctx, "application rejected", "error", err)
		report(f.notifier, err)
		return models.Record{}, err
	}

	f.notifier.Notify(notify.Success("Membership application submitted successfully"))
	f.reset()
	return created, nil
}

func (f *MembershipForm) reset() {
	f.mu.Lock()
	f.values = map[string]string{}
	f.photo = nil
	f.mu.Unlock()
	f.phone.Reset()
}

func (f *MembershipForm) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Close tears the form down; late check and submit replies are ignored.
func (f *MembershipForm) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.phone.Close()
}
