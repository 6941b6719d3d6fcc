package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/nehruadmin/internal/client/client"
	"github.com/dmitrijs2005/nehruadmin/internal/client/guard"
	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/notify"
	"github.com/dmitrijs2005/nehruadmin/internal/client/upload"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id, title string) models.Record {
	return models.Record{ID: id, Fields: map[string]any{"title": title}}
}

func newGallery(t *testing.T, fc *fakeClient, seed ...models.Record) (*ResourceService, *collector) {
	t.Helper()
	n := &collector{}
	s := NewResourceService(models.DefaultCatalog()[models.ResourceGallery], fc, n, logging.Nop())
	fc.list = func() ([]models.Record, error) { return seed, nil }
	require.NoError(t, s.Fetch(context.Background()))
	return s, n
}

func galleryForm(title string, withFile bool) guard.Form {
	f := guard.Form{Fields: []upload.Field{{Name: "title", Value: title}}}
	if withFile {
		f.File = &upload.File{Name: "rally.jpg", ContentType: "image/jpeg", Data: []byte("img")}
	}
	return f
}

var server500 = &client.ServerError{Status: 500, Body: []byte("boom")}

func TestFetch_FailureKeepsListAndNotifiesOnce(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc, rec("a", "A"))

	fc.list = func() ([]models.Record, error) { return nil, &client.NetworkError{Op: "list", Err: errors.New("refused")} }
	require.Error(t, s.Fetch(context.Background()))

	assert.Len(t, s.Records(), 1)
	items := n.all()
	require.Len(t, items, 1)
	assert.Equal(t, "failed to reach server", items[0].Message)
}

func TestCreate_PartialReplyIsCompleted(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc, rec("a", "A"))
	fc.create = func(p *upload.Payload) (models.Record, error) {
		return models.Record{ID: "new1", Fields: map[string]any{"image_url": "http://m/new1.jpg"}}, nil
	}

	var progress []int
	got, err := s.Create(context.Background(), galleryForm("Rally 2024", true), func(p int) { progress = append(progress, p) })
	require.NoError(t, err)

	assert.Equal(t, "Rally 2024", got.Text("title"))
	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "new1", recs[1].ID)
	assert.Equal(t, "Rally 2024", recs[1].Text("title"))
	assert.Equal(t, "http://m/new1.jpg", recs[1].MediaURL("image"))
	assert.Equal(t, []int{100}, progress)
	assert.Equal(t, []notify.Level{notify.LevelSuccess}, n.levels())
	assert.False(t, s.InFlight())
}

func TestCreate_ServerErrorLeavesListUnchanged(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc, rec("a", "A"))
	before := s.Records()
	fc.create = func(p *upload.Payload) (models.Record, error) { return models.Record{}, server500 }

	_, err := s.Create(context.Background(), galleryForm("Rally 2024", true), nil)
	require.Error(t, err)

	assert.Empty(t, cmp.Diff(before, s.Records()))
	items := n.all()
	require.Len(t, items, 1)
	assert.Equal(t, notify.LevelError, items[0].Level)
	assert.Equal(t, "server error, please try again later", items[0].Message)
	assert.False(t, s.InFlight())
}

func TestCreate_ValidationNeverReachesNetwork(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc)

	_, err := s.Create(context.Background(), galleryForm("", true), nil)
	var ve *guard.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)

	_, err = s.Create(context.Background(), galleryForm("Rally", false), nil)
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "image", ve.Field)

	assert.Equal(t, 0, fc.createCalls())
	assert.Equal(t, []notify.Level{notify.LevelWarning, notify.LevelWarning}, n.levels())
}

func TestCreate_NoRecordReloads(t *testing.T) {
	fc := &fakeClient{}
	s, _ := newGallery(t, fc)
	fc.create = func(p *upload.Payload) (models.Record, error) { return models.Record{}, client.ErrNoRecord }
	fc.list = func() ([]models.Record, error) { return []models.Record{rec("srv", "From server")}, nil }

	_, err := s.Create(context.Background(), galleryForm("From server", true), nil)
	require.NoError(t, err)
	require.Len(t, s.Records(), 1)
	assert.Equal(t, "srv", s.Records()[0].ID)
}

func TestCreate_ReadOnlyResource(t *testing.T) {
	n := &collector{}
	s := NewResourceService(models.DefaultCatalog()[models.ResourceComplaints], &fakeClient{}, n, logging.Nop())

	_, err := s.Create(context.Background(), guard.Form{}, nil)
	require.ErrorIs(t, err, ErrReadOnly)
	assert.Len(t, n.all(), 1)
}

func TestUpdate_NoRecordReloads(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc, models.Record{ID: "a", Fields: map[string]any{"title": "Old"}})
	fc.update = func(id string, p *upload.Payload) (models.Record, error) {
		return models.Record{ID: id}, client.ErrNoRecord
	}
	fc.list = func() ([]models.Record, error) { return []models.Record{rec("a", "Fresh")}, nil }

	_, err := s.Update(context.Background(), "a", galleryForm("Fresh", false), nil)
	require.NoError(t, err)
	require.Len(t, s.Records(), 1)
	assert.Equal(t, "Fresh", s.Records()[0].Text("title"))
	assert.Contains(t, n.levels(), notify.LevelSuccess)
}

func TestUpdate_MergesAndKeepsBinary(t *testing.T) {
	fc := &fakeClient{}
	seed := models.Record{ID: "a", Fields: map[string]any{"title": "Old", "image_url": "http://m/a.jpg"}}
	s, n := newGallery(t, fc, seed)
	fc.update = func(id string, p *upload.Payload) (models.Record, error) {
		_, binary := p.Count()
		assert.Equal(t, 0, binary)
		return models.Record{ID: id, Fields: map[string]any{"title": "New"}}, nil
	}

	_, err := s.Update(context.Background(), "a", galleryForm("New", false), nil)
	require.NoError(t, err)

	got, _ := s.Record("a")
	assert.Equal(t, "New", got.Text("title"))
	assert.Equal(t, "http://m/a.jpg", got.MediaURL("image"))
	assert.Equal(t, []notify.Level{notify.LevelSuccess}, n.levels())
}

func TestUpdate_FailureLeavesListUnchanged(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc, rec("a", "Old"))
	before := s.Records()
	fc.update = func(id string, p *upload.Payload) (models.Record, error) {
		return models.Record{}, &client.ServerError{Status: 400, Message: "Image title already exists"}
	}

	_, err := s.Update(context.Background(), "a", galleryForm("Dup", false), nil)
	require.Error(t, err)
	assert.Empty(t, cmp.Diff(before, s.Records()))
	items := n.all()
	require.Len(t, items, 1)
	assert.Equal(t, "Image title already exists", items[0].Message)
}

func TestDelete_LastRequestWins(t *testing.T) {
	fc := &fakeClient{remove: func(id string) error { return nil }}
	s, n := newGallery(t, fc, rec("A", "a"), rec("B", "b"))

	_, err := s.RequestDelete("A")
	require.NoError(t, err)
	_, err = s.RequestDelete("B")
	require.NoError(t, err)
	pending, ok := s.PendingDelete()
	require.True(t, ok)
	assert.Equal(t, "B", pending.ID)

	require.NoError(t, s.ConfirmDelete(context.Background()))

	assert.Equal(t, []string{"B"}, fc.removed)
	require.Len(t, s.Records(), 1)
	assert.Equal(t, "A", s.Records()[0].ID)
	assert.Equal(t, []notify.Level{notify.LevelSuccess}, n.levels())

	_, ok = s.PendingDelete()
	assert.False(t, ok)
}

func TestDelete_FailureReturnsToIdle(t *testing.T) {
	fc := &fakeClient{remove: func(id string) error { return server500 }}
	s, n := newGallery(t, fc, rec("A", "a"))

	_, err := s.RequestDelete("A")
	require.NoError(t, err)
	require.Error(t, s.ConfirmDelete(context.Background()))

	assert.Len(t, s.Records(), 1)
	_, ok := s.PendingDelete()
	assert.False(t, ok)
	assert.Equal(t, []notify.Level{notify.LevelError}, n.levels())
}

func TestDelete_CancelDispatchesNothing(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc, rec("A", "a"))

	_, err := s.RequestDelete("A")
	require.NoError(t, err)
	assert.True(t, s.CancelDelete())
	assert.Empty(t, fc.removed)
	assert.Empty(t, n.all())

	_, err = s.RequestDelete("missing")
	require.ErrorIs(t, err, ErrUnknownRecord)
	assert.Len(t, n.all(), 1)
}

func TestApprove_MarksRecordAndCarriesLink(t *testing.T) {
	fc := &fakeClient{}
	n := &collector{}
	s := NewResourceService(models.DefaultCatalog()[models.ResourceLicenses], fc, n, logging.Nop())
	fc.list = func() ([]models.Record, error) {
		return []models.Record{{ID: "l1", Fields: map[string]any{"name": "Asha", "is_approved": false}}}, nil
	}
	require.NoError(t, s.Fetch(context.Background()))

	fc.approve = func(id string) (*client.Approval, error) {
		return &client.Approval{Message: "License approved", WhatsAppLink: "https://wa.me/91x", PDFURL: "http://m/l1.pdf"}, nil
	}
	_, err := s.Approve(context.Background(), "l1")
	require.NoError(t, err)

	got, _ := s.Record("l1")
	assert.True(t, got.Bool("is_approved"))
	assert.Equal(t, "http://m/l1.pdf", got.Text("license_pdf"))
	items := n.all()
	require.Len(t, items, 1)
	assert.Equal(t, "https://wa.me/91x", items[0].Link)
}

func TestApprove_NotApprovable(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc)
	_, err := s.Approve(context.Background(), "x")
	require.ErrorIs(t, err, ErrNotApprovable)
	assert.Len(t, n.all(), 1)
}

func TestClose_LateCompletionIsIgnored(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc, rec("a", "A"))
	before := s.Records()

	release := make(chan struct{})
	started := make(chan struct{})
	fc.create = func(p *upload.Payload) (models.Record, error) {
		close(started)
		<-release
		return rec("late", "Late"), nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Create(context.Background(), galleryForm("Late", true), nil)
		done <- err
	}()
	<-started
	s.Close()
	close(release)

	require.ErrorIs(t, <-done, ErrClosed)
	assert.Empty(t, cmp.Diff(before, s.Records()))
	assert.Empty(t, n.all())
}

func TestCreate_SecondSubmitWhileInFlight(t *testing.T) {
	fc := &fakeClient{}
	s, n := newGallery(t, fc)

	release := make(chan struct{})
	started := make(chan struct{})
	fc.create = func(p *upload.Payload) (models.Record, error) {
		close(started)
		<-release
		return rec("one", "One"), nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Create(context.Background(), galleryForm("One", true), nil)
		done <- err
	}()
	<-started

	up, ok := s.Upload()
	require.True(t, ok)
	assert.Equal(t, "rally.jpg", up.FileName)

	_, err := s.Create(context.Background(), galleryForm("Two", true), nil)
	require.ErrorIs(t, err, guard.ErrInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, s.Records(), 1)
	assert.Equal(t, []notify.Level{notify.LevelWarning, notify.LevelSuccess}, n.levels())
}
