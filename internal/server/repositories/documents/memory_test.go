package documents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nehruadmin/internal/common"
	"github.com/dmitrijs2005/nehruadmin/internal/server/models"
)

func TestMemoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository("_id", ObjectIDs())

	a, err := r.Insert(ctx, models.Document{"title": "A"})
	require.NoError(t, err)
	b, err := r.Insert(ctx, models.Document{"title": "B"})
	require.NoError(t, err)

	idA := a.String("_id")
	assert.Len(t, idA, 24)
	assert.NotEqual(t, idA, b.String("_id"))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].String("title"))

	found, err := r.FindBy(ctx, "title", "B")
	require.NoError(t, err)
	assert.Equal(t, b.String("_id"), found.String("_id"))

	upd, err := r.Update(ctx, idA, models.Document{"title": "A2", "_id": "hijack"})
	require.NoError(t, err)
	assert.Equal(t, "A2", upd.String("title"))
	assert.Equal(t, idA, upd.String("_id"))

	require.NoError(t, r.Delete(ctx, idA))
	assert.Equal(t, 1, r.Len())
	_, err = r.Get(ctx, idA)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, r.Delete(ctx, idA), common.ErrorNotFound)
	_, err = r.Update(ctx, idA, models.Document{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository("id", Sequence())

	d, err := r.Insert(ctx, models.Document{"subject": "noise"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), d["id"])

	d["subject"] = "changed"
	got, err := r.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "noise", got.String("subject"))
}
