package prefabs

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// Digests remembers the xxh3 hash of the last content seen per file so a
// reload triggered by a save that changed nothing can be skipped.
type Digests struct {
	mu   sync.Mutex
	seen map[string]uint64
}

func NewDigests() *Digests {
	return &Digests{seen: make(map[string]uint64)}
}

// Changed records data under name and reports whether it differs from the
// previous content. The first sighting of a name counts as a change.
func (d *Digests) Changed(name string, data []byte) bool {
	sum := xxh3.Hash(data)
	d.mu.Lock()
	defer d.mu.Unlock()
	prev, ok := d.seen[name]
	d.seen[name] = sum
	return !ok || prev != sum
}

// Forget drops the remembered hash for name.
func (d *Digests) Forget(name string) {
	d.mu.Lock()
	delete(d.seen, name)
	d.mu.Unlock()
}
