package provider

import (
	"context"
	"testing"

	"github.com/kbukum/provkit/errors"
	"github.com/kbukum/provkit/logger"
)

type Cache interface {
	Base
	Get(key string) (string, bool)
	Put(key, value string)
}

type Store interface {
	Base
	Save(doc string) error
}

var (
	cacheContract = ContractOf[Cache]("Cache")
	storeContract = ContractOf[Store]("Store")
)

type memoryCache struct {
	usable bool
	data   map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{usable: true, data: make(map[string]string)}
}

func (c *memoryCache) Name() string        { return "MemoryCache" }
func (c *memoryCache) Description() string { return "in-process map" }
func (c *memoryCache) CanUse() bool        { return c.usable }
func (c *memoryCache) Get(key string) (string, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *memoryCache) Put(key, value string) { c.data[key] = value }

type diskCache struct{ usable bool }

func (c *diskCache) Name() string              { return "DiskCache" }
func (c *diskCache) Description() string       { return "" }
func (c *diskCache) CanUse() bool              { return c.usable }
func (c *diskCache) Get(string) (string, bool) { return "", false }
func (c *diskCache) Put(string, string)        {}

// redisCache is built with the registry injected.
type redisCache struct{ reg *Registry }

func (c *redisCache) Name() string              { return "RedisCache" }
func (c *redisCache) Description() string       { return "" }
func (c *redisCache) CanUse() bool              { return true }
func (c *redisCache) Get(string) (string, bool) { return "", false }
func (c *redisCache) Put(string, string)        {}

// hybrid implements both Cache and Store.
type hybrid struct{}

func (hybrid) Name() string              { return "Hybrid" }
func (hybrid) Description() string       { return "" }
func (hybrid) CanUse() bool              { return true }
func (hybrid) Get(string) (string, bool) { return "", false }
func (hybrid) Put(string, string)        {}
func (hybrid) Save(string) error         { return nil }

type fileStore struct{}

func (*fileStore) Name() string        { return "FileStore" }
func (*fileStore) Description() string { return "" }
func (*fileStore) CanUse() bool        { return true }
func (*fileStore) Save(string) error   { return nil }

// bareProvider implements Base and nothing else.
type bareProvider struct{}

func (*bareProvider) Name() string        { return "Bare" }
func (*bareProvider) Description() string { return "" }
func (*bareProvider) CanUse() bool        { return true }

// notProvider has the Cache methods but not Base.
type notProvider struct{}

func (*notProvider) Get(string) (string, bool) { return "", false }
func (*notProvider) Put(string, string)        {}

// lifecycleCache records Init and Close calls.
type lifecycleCache struct {
	name     string
	initErr  error
	closeErr error
	inits    int
	log      *[]string
}

func (c *lifecycleCache) Name() string              { return c.name }
func (c *lifecycleCache) Description() string       { return "" }
func (c *lifecycleCache) CanUse() bool              { return true }
func (c *lifecycleCache) Get(string) (string, bool) { return "", false }
func (c *lifecycleCache) Put(string, string)        {}

func (c *lifecycleCache) Init(context.Context) error {
	c.inits++
	return c.initErr
}

func (c *lifecycleCache) Close(context.Context) error {
	if c.log != nil {
		*c.log = append(*c.log, c.name)
	}
	return c.closeErr
}

// closingStore is a second Closeable type so two can be registered.
type closingStore struct{ log *[]string }

func (*closingStore) Name() string        { return "ClosingStore" }
func (*closingStore) Description() string { return "" }
func (*closingStore) CanUse() bool        { return true }
func (*closingStore) Save(string) error   { return nil }

func (s *closingStore) Close(context.Context) error {
	*s.log = append(*s.log, "ClosingStore")
	return nil
}

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	r := New(append([]Option{WithLogger(logger.Nop())}, opts...)...)
	if _, err := r.RegisterCategory(cacheContract, "", "key/value caches"); err != nil {
		t.Fatalf("RegisterCategory failed: %v", err)
	}
	return r
}

func mustRegister(t *testing.T, r *Registry, d Descriptor) *Registration {
	t.Helper()
	p, err := r.RegisterProvider(d)
	if err != nil {
		t.Fatalf("RegisterProvider(%s) failed: %v", d.Name, err)
	}
	return p
}

func usableIf(v bool) func() bool {
	return func() bool { return v }
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := errors.CodeOf(err); got != code {
		t.Fatalf("expected code %s, got %s (%v)", code, got, err)
	}
}
