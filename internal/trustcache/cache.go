package trustcache

import (
	"container/list"
	"slices"
	"sync"

	"github.com/zeebo/blake3"

	"keyshare/internal/crypto"
	"keyshare/internal/domain"
	"keyshare/internal/protocol/sharestrategy"
)

// Key identifies one resolution.
type Key [32]byte

// NewKey derives the cache key for a resolution over the snapshot with
// fingerprint fp. Recipient order and duplicates do not affect the key.
func NewKey(fp domain.Fingerprint, strategy domain.ShareStrategy, local domain.UserID, recipients []domain.UserID) Key {
	rs := slices.Clone(recipients)
	slices.Sort(rs)
	rs = slices.Compact(rs)

	h := blake3.New()
	write := func(s string) {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}
	write(fp.String())
	write(strategy.String())
	write(string(local))
	for _, r := range rs {
		write(string(r))
	}
	var k Key
	copy(k[:], h.Sum(nil))
	return k
}

type entry struct {
	key Key
	res domain.Resolution
}

// Cache is a size-bounded LRU of resolutions. It is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[Key]*list.Element
}

// New returns a cache holding at most capacity resolutions. A capacity of
// zero or less disables caching.
func New(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[Key]*list.Element),
	}
}

// Get returns a copy of the cached resolution for k.
func (c *Cache) Get(k Key) (domain.Resolution, bool) {
	if c == nil || c.capacity <= 0 {
		return domain.Resolution{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[k]
	if !ok {
		return domain.Resolution{}, false
	}
	c.order.MoveToFront(el)
	return clone(el.Value.(*entry).res), true
}

// Put stores a copy of res under k, evicting the least recently used entry
// when full.
func (c *Cache) Put(k Key, res domain.Resolution) {
	if c == nil || c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[k]; ok {
		el.Value.(*entry).res = clone(res)
		c.order.MoveToFront(el)
		return
	}
	c.entries[k] = c.order.PushFront(&entry{key: k, res: clone(res)})
	for c.order.Len() > c.capacity {
		last := c.order.Back()
		c.order.Remove(last)
		delete(c.entries, last.Value.(*entry).key)
	}
}

// Len returns the number of cached resolutions.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Resolve returns the cached resolution for the arguments, computing and
// caching it on a miss. hit reports whether the cache answered.
func (c *Cache) Resolve(
	strategy domain.ShareStrategy,
	local domain.UserID,
	snapshot domain.KeyQueryResponse,
	recipients []domain.UserID,
) (res domain.Resolution, hit bool, err error) {
	fp, err := crypto.SnapshotFingerprint(snapshot)
	if err != nil {
		return domain.Resolution{}, false, err
	}
	k := NewKey(fp, strategy, local, recipients)
	if res, ok := c.Get(k); ok {
		return res, true, nil
	}
	res, err = sharestrategy.Resolve(strategy, local, snapshot, recipients)
	if err != nil {
		return domain.Resolution{}, false, err
	}
	c.Put(k, res)
	return res, false, nil
}

func clone(r domain.Resolution) domain.Resolution {
	out := r
	out.Devices = slices.Clone(r.Devices)
	out.Diagnostics.Issues = slices.Clone(r.Diagnostics.Issues)
	return out
}
