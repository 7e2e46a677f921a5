package blog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/provkit/provider"
	"github.com/kbukum/provkit/validation"
)

// MemoryName is the provider name Memory registers under.
const MemoryName = "Memory"

// Post is a blog entry.
type Post struct {
	ID        string    `validate:"required,uuid"`
	Title     string    `validate:"required,max=200"`
	Body      string
	Published time.Time `validate:"required"`
}

// Memory keeps posts in process. It is always usable.
type Memory struct {
	mu    sync.RWMutex
	posts []Post
}

// NewMemory creates an empty in-memory blog.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Name() string        { return MemoryName }
func (m *Memory) Description() string { return "in-memory blog storage" }
func (m *Memory) CanUse() bool        { return true }

// PostCount returns the number of stored posts.
func (m *Memory) PostCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.posts)
}

// Publish stores a post with a generated ID and returns it.
func (m *Memory) Publish(title, body string) (Post, error) {
	p := Post{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Body:      body,
		Published: time.Now().UTC(),
	}
	if err := validation.Validate(p); err != nil {
		return Post{}, err
	}

	m.mu.Lock()
	m.posts = append(m.posts, p)
	m.mu.Unlock()
	return p, nil
}

// Posts returns the stored posts, oldest first.
func (m *Memory) Posts() []Post {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Post, len(m.posts))
	copy(out, m.posts)
	return out
}

// RegisterMemory registers Memory as a lazily built provider of r.
func RegisterMemory(r *provider.Registry) (*provider.Registration, error) {
	return r.RegisterProvider(provider.Descriptor{
		Type:        provider.TypeOf[*Memory](),
		Name:        MemoryName,
		Description: "in-memory blog storage",
		Usable:      func() bool { return true },
		Strategy:    provider.Constructor(NewMemory),
	})
}
