package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/nehruadmin/internal/client/client"
	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/notify"
	"github.com/dmitrijs2005/nehruadmin/internal/client/upload"
)

// fakeClient implements client.Client with per-method hooks; calls to
// unset hooks panic through the embedded nil interface.
type fakeClient struct {
	client.Client

	mu      sync.Mutex
	removed []string
	parts   [][]upload.Part

	list        func() ([]models.Record, error)
	create      func(p *upload.Payload) (models.Record, error)
	update      func(id string, p *upload.Payload) (models.Record, error)
	remove      func(id string) error
	checkUnique func(value string) (bool, error)
	approve     func(id string) (*client.Approval, error)
	login       func(email, password string) (*client.Tokens, error)
	refresh     func(token string) (string, error)
}

func (f *fakeClient) List(ctx context.Context, res models.Resource) ([]models.Record, error) {
	return f.list()
}

func (f *fakeClient) Create(ctx context.Context, res models.Resource, p *upload.Payload, onProgress upload.ProgressFunc) (models.Record, error) {
	f.mu.Lock()
	f.parts = append(f.parts, p.Parts())
	f.mu.Unlock()
	if onProgress != nil {
		onProgress(100)
	}
	return f.create(p)
}

func (f *fakeClient) Update(ctx context.Context, res models.Resource, id string, p *upload.Payload, onProgress upload.ProgressFunc) (models.Record, error) {
	f.mu.Lock()
	f.parts = append(f.parts, p.Parts())
	f.mu.Unlock()
	return f.update(id, p)
}

func (f *fakeClient) Remove(ctx context.Context, res models.Resource, id string) error {
	f.mu.Lock()
	f.removed = append(f.removed, id)
	f.mu.Unlock()
	return f.remove(id)
}

func (f *fakeClient) CheckUnique(ctx context.Context, res models.Resource, field, value string) (bool, error) {
	return f.checkUnique(value)
}

func (f *fakeClient) Approve(ctx context.Context, res models.Resource, id string) (*client.Approval, error) {
	return f.approve(id)
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*client.Tokens, error) {
	return f.login(email, password)
}

func (f *fakeClient) Refresh(ctx context.Context, token string) (string, error) {
	return f.refresh(token)
}

func (f *fakeClient) createCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.parts)
}

// collector records notifications.
type collector struct {
	mu    sync.Mutex
	items []notify.Notification
}

func (c *collector) Notify(n notify.Notification) {
	c.mu.Lock()
	c.items = append(c.items, n)
	c.mu.Unlock()
}

func (c *collector) all() []notify.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]notify.Notification(nil), c.items...)
}

func (c *collector) levels() []notify.Level {
	var out []notify.Level
	for _, n := range c.all() {
		out = append(out, n.Level)
	}
	return out
}
