package client

import (
	"context"

	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/upload"
)

type Client interface {
	List(ctx context.Context, res models.Resource) ([]models.Record, error)
	Create(ctx context.Context, res models.Resource, p *upload.Payload, onProgress upload.ProgressFunc) (models.Record, error)
	Update(ctx context.Context, res models.Resource, id string, p *upload.Payload, onProgress upload.ProgressFunc) (models.Record, error)
	Remove(ctx context.Context, res models.Resource, id string) error
	CheckUnique(ctx context.Context, res models.Resource, field, value string) (bool, error)
	Approve(ctx context.Context, res models.Resource, id string) (*Approval, error)
	Login(ctx context.Context, email, password string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// TokenProvider returns the access token for the next request; an empty
// token sends the request unauthenticated.
type TokenProvider func(ctx context.Context) (string, error)

// Approval is the backend's reply to a membership approval.
type Approval struct {
	Message      string `json:"message"`
	WhatsAppLink string `json:"whatsapp_link,omitempty"`
	PDFURL       string `json:"pdf_url,omitempty"`
}

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// Tokens is the reply to a successful login.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    User   `json:"user"`
}
