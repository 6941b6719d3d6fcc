package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var m map[string]any
	require.NoError(t, dec.Decode(&m))
	return m
}

func TestDecodeRecord(t *testing.T) {
	t.Run("string id", func(t *testing.T) {
		r, err := DecodeRecord(decode(t, `{"_id":"65a1","title":"Rally"}`), "_id")
		require.NoError(t, err)
		assert.Equal(t, "65a1", r.ID)
		assert.Equal(t, "Rally", r.Text("title"))
		_, ok := r.Fields["_id"]
		assert.False(t, ok)
	})

	t.Run("numeric id", func(t *testing.T) {
		r, err := DecodeRecord(decode(t, `{"id":42,"subject":"Road"}`), "id")
		require.NoError(t, err)
		assert.Equal(t, "42", r.ID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := DecodeRecord(decode(t, `{"message":"ok"}`), "_id")
		require.ErrorIs(t, err, ErrMissingID)
	})

	t.Run("blank id", func(t *testing.T) {
		_, err := DecodeRecord(decode(t, `{"_id":"  "}`), "_id")
		require.ErrorIs(t, err, ErrMissingID)
	})
}

func TestRecord_Helpers(t *testing.T) {
	r, err := DecodeRecord(decode(t, `{
		"_id": "1",
		"image": "gallery/rally.jpg",
		"image_url": "http://cdn/gallery/rally.jpg",
		"photo": "licenses/p.jpg",
		"is_approved": true,
		"count": 3,
		"created_at": "2024-03-01T10:20:30.123456+00:00"
	}`), "_id")
	require.NoError(t, err)

	assert.Equal(t, "http://cdn/gallery/rally.jpg", r.MediaURL("image"))
	assert.Equal(t, "licenses/p.jpg", r.MediaURL("photo"))
	assert.True(t, r.Bool("is_approved"))
	assert.False(t, r.Bool("missing"))
	assert.Equal(t, "3", r.Text("count"))
	assert.Equal(t, "true", r.Text("is_approved"))

	at, ok := r.CreatedAt()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 20, 30, 123456000, time.UTC), at.UTC())
}

func TestRecord_WithDoesNotAlias(t *testing.T) {
	orig := Record{ID: "1", Fields: map[string]any{"is_approved": false}}
	upd := orig.With(map[string]any{"is_approved": true})

	assert.True(t, upd.Bool("is_approved"))
	assert.False(t, orig.Bool("is_approved"))
}

func TestResource_URLs(t *testing.T) {
	cat := DefaultCatalog()

	banners, ok := cat.Lookup(ResourceBanners)
	require.True(t, ok)
	assert.Equal(t, "/banner/banners/", banners.CollectionURL())
	assert.Equal(t, "/banner/b1/", banners.ItemURL("b1"))

	lic, _ := cat.Lookup(ResourceLicenses)
	assert.Equal(t, "/license/", lic.CollectionURL())
	assert.Equal(t, "/license/x/", lic.ItemURL("x"))
	assert.Equal(t, "/license/x/approve/", lic.ApproveURL("x"))
	assert.Equal(t, "/license/check_phone/?phone=9876543210", lic.CheckURL("phone", "9876543210"))

	over := cat.WithPaths(map[string]string{ResourceBanners: "/v2/banners"})
	b2, _ := over.Lookup(ResourceBanners)
	assert.Equal(t, "/v2/banners/", b2.Path)
	assert.Equal(t, "/v2/banners/b1/", b2.ItemURL("b1"))
	// original untouched
	assert.Equal(t, "/banner/banners/", cat[ResourceBanners].Path)

	assert.Equal(t, []string{"banners", "blog", "complaints", "gallery", "licenses"}, cat.Names())
}
