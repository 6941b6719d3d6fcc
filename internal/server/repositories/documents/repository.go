// Package documents stores the backend's collections.
package documents

import (
	"context"

	"github.com/dmitrijs2005/nehruadmin/internal/server/models"
)

// Repository is one collection. Lookups that find nothing return
// common.ErrorNotFound.
type Repository interface {
	// List returns the documents in insertion order.
	List(ctx context.Context) ([]models.Document, error)
	Get(ctx context.Context, id string) (models.Document, error)
	FindBy(ctx context.Context, field, value string) (models.Document, error)
	// Insert stores doc under a fresh id and returns the stored copy.
	Insert(ctx context.Context, doc models.Document) (models.Document, error)
	// Update sets the patch fields on document id and returns the result.
	Update(ctx context.Context, id string, patch models.Document) (models.Document, error)
	Delete(ctx context.Context, id string) error
	Len() int
}
