package services

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/gofont/goregular"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
	"github.com/dmitrijs2005/nehruadmin/internal/server/models"
	"github.com/dmitrijs2005/nehruadmin/internal/server/repositories/documents"
	"github.com/dmitrijs2005/nehruadmin/internal/server/repositories/media"
)

const base = "http://media.test"

func newContent(t *testing.T, name string) (*ContentService, *media.MemoryStore) {
	t.Helper()
	c := DefaultCollections()[name]
	ids := documents.ObjectIDs()
	if c.IDField == "id" {
		ids = documents.Sequence()
	}
	store := media.NewMemoryStore()
	return NewContentService(c, documents.NewMemoryRepository(c.IDField, ids), store), store
}

func jpeg(name string) *Upload {
	return &Upload{Name: name, ContentType: "image/jpeg", Data: []byte("\xff\xd8\xff")}
}

func mediaPath(t *testing.T, link string) string {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Path
}

func requestError(t *testing.T, err error) string {
	t.Helper()
	var re *RequestError
	require.ErrorAs(t, err, &re)
	return re.Message
}

func TestContent_CreateGallery(t *testing.T) {
	ctx := context.Background()
	s, store := newContent(t, Gallery)

	doc, err := s.Create(ctx, Input{Fields: map[string]string{"title": "Rally 2024"}, File: jpeg("rally.jpg"), BaseURL: base})
	require.NoError(t, err)
	assert.Len(t, doc.String("_id"), 24)
	assert.Equal(t, "Rally 2024", doc["title"])
	link := doc.String("image_url")
	require.True(t, strings.HasPrefix(link, base+"/media/gallery/"), link)
	assert.True(t, strings.HasSuffix(link, "_rally.jpg"))

	m, err := store.Open(ctx, mediaPath(t, link))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", m.ContentType)

	_, err = s.Create(ctx, Input{Fields: map[string]string{"title": "Rally 2024"}, File: jpeg("b.jpg")})
	assert.Equal(t, "Title already exists", requestError(t, err))

	_, err = s.Create(ctx, Input{Fields: map[string]string{"title": "No image"}})
	assert.Equal(t, "Title and image are required", requestError(t, err))
}

func TestContent_CreateBlogDefaultsToDraft(t *testing.T) {
	s, _ := newContent(t, Blog)
	doc, err := s.Create(context.Background(), Input{
		Fields: map[string]string{"title": "T", "content": "Body"},
		File:   jpeg("c.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", doc["status"])
	assert.Nil(t, doc["subtitle"])
	assert.NotEmpty(t, doc["created_at"])
}

func TestContent_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s, _ := newContent(t, Banners)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { clock = clock.Add(time.Minute); return clock }

	first, err := s.Create(ctx, Input{File: jpeg("1.jpg")})
	require.NoError(t, err)
	second, err := s.Create(ctx, Input{File: jpeg("2.jpg")})
	require.NoError(t, err)

	docs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, second["_id"], docs[0]["_id"])
	assert.Equal(t, first["_id"], docs[1]["_id"])
}

func TestContent_UpdateReplacesImage(t *testing.T) {
	ctx := context.Background()
	s, store := newContent(t, Gallery)
	doc, err := s.Create(ctx, Input{Fields: map[string]string{"title": "A"}, File: jpeg("a.jpg"), BaseURL: base})
	require.NoError(t, err)
	id := doc.String("_id")
	oldPath := mediaPath(t, doc.String("image_url"))

	_, err = s.Update(ctx, id, Input{Fields: map[string]string{"title": ""}})
	assert.Equal(t, "No fields to update", requestError(t, err))

	got, err := s.Update(ctx, id, Input{File: jpeg("b.jpg"), BaseURL: base})
	require.NoError(t, err)
	assert.Equal(t, "A", got["title"], "empty fields are kept")
	assert.NotEqual(t, doc["image_url"], got["image_url"])

	_, err = store.Open(ctx, oldPath)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	got, err = s.Update(ctx, id, Input{Fields: map[string]string{"title": "A"}})
	require.NoError(t, err, "a document does not clash with itself")
	assert.Equal(t, "A", got["title"])
}

func TestContent_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	s, _ := newContent(t, Banners)
	_, err := s.Update(ctx, "nope", Input{File: jpeg("a.jpg")})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), common.ErrorNotFound)
}

func TestContent_DeleteRemovesMedia(t *testing.T) {
	ctx := context.Background()
	s, store := newContent(t, Banners)
	doc, err := s.Create(ctx, Input{File: jpeg("a.jpg"), BaseURL: base})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, doc.String("_id")))
	assert.Equal(t, 0, s.Len())
	_, err = store.Open(ctx, mediaPath(t, doc.String("image_url")))
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestContent_ComplaintsUseSequenceIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newContent(t, Complaints)
	doc, err := s.Create(ctx, Input{Fields: map[string]string{"name": "Ravi", "message": "Street lights"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), doc["id"])

	_, err = s.Create(ctx, Input{Fields: map[string]string{"name": "Ravi"}})
	assert.Equal(t, "Name and message are required", requestError(t, err))
}

func TestLicense_CreateCheckApprove(t *testing.T) {
	ctx := context.Background()
	cs, store := newContent(t, Licenses)
	s := NewLicenseService(cs)

	ok, err := s.IsAvailable(ctx, "phone", "9876543210")
	require.NoError(t, err)
	assert.True(t, ok)

	doc, err := s.Create(ctx, Input{
		Fields:  map[string]string{"name": "Asha Rao", "phone": "9876543210", "aadhar_number": "123412341234"},
		File:    jpeg("asha.jpg"),
		BaseURL: base,
	})
	require.NoError(t, err)
	assert.Equal(t, false, doc["is_approved"])
	assert.Contains(t, doc.String("photo"), "/media/licenses/photos/")

	ok, err = s.IsAvailable(ctx, "phone", "9876543210")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Create(ctx, Input{Fields: map[string]string{"phone": "9876543210"}})
	assert.Equal(t, "This phone number is already registered for a license.", requestError(t, err))

	_, err = s.Create(ctx, Input{Fields: map[string]string{"name": "No phone"}})
	assert.Equal(t, "Phone number is required", requestError(t, err))

	a, err := s.Approve(ctx, doc.String("_id"), base)
	require.NoError(t, err)
	assert.Equal(t, "Approved successfully!", a.Message)
	assert.True(t, strings.HasPrefix(a.WhatsAppLink, "https://wa.me/919876543210?text=Hello%20Asha%20Rao"), a.WhatsAppLink)
	assert.NotContains(t, a.WhatsAppLink, "+")
	assert.Contains(t, a.PDFURL, "/media/licenses/generated/")
	assert.True(t, strings.HasSuffix(a.PDFURL, "_NEHRU_MLA_Asha_Rao.pdf"), a.PDFURL)

	pdf, err := store.Open(ctx, mediaPath(t, a.PDFURL))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", pdf.ContentType)
	assert.True(t, bytes.HasPrefix(pdf.Data, []byte("%PDF-")))
	assert.True(t, bytes.Contains(pdf.Data, utf16BE("Asha Rao")))

	got, err := s.Get(ctx, doc.String("_id"))
	require.NoError(t, err)
	assert.Equal(t, true, got["is_approved"])
	assert.Equal(t, a.PDFURL, got["license_pdf"])
}

func TestLicense_ApproveMissing(t *testing.T) {
	cs, _ := newContent(t, Licenses)
	_, err := NewLicenseService(cs).Approve(context.Background(), "nope", base)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func utf16BE(s string) []byte {
	var out []byte
	for _, u := range utf16.Encode([]rune(s)) {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

func TestCertificatePDF_KeepsNonASCIIName(t *testing.T) {
	name := "José Ñúñez Иванов"
	pdf, err := certificatePDF(models.Document{"name": name, "phone": "9876543210"}, goregular.TTF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	assert.True(t, bytes.Contains(pdf, utf16BE(name)), "the name is stored as a UTF-16 document subject")
}

func TestLicense_ApproveWithCustomFont(t *testing.T) {
	cs, store := newContent(t, Licenses)
	s := NewLicenseService(cs, WithCertificateFont(goregular.TTF))
	doc, err := s.Create(context.Background(), Input{Fields: map[string]string{"name": "Zoë", "phone": "9123456789"}})
	require.NoError(t, err)

	a, err := s.Approve(context.Background(), doc.String("_id"), base)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(a.PDFURL, "_NEHRU_MLA_Zoë.pdf"), a.PDFURL)
	m, err := store.Open(context.Background(), mediaPath(t, a.PDFURL))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(m.Data, utf16BE("Zoë")))
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "member", safeName("../"))
	assert.Equal(t, "Asha_Rao", safeName("Asha Rao/"))
	assert.Equal(t, "आशा_राव", safeName("आशा राव"), "combining marks are kept")
}
