package watch

// DedupCache is a fixed-capacity FIFO of recently seen line hashes with an
// O(1) membership set. Filesystem watchers can deliver duplicate modify
// events for a single write; the cache makes line handling idempotent within
// its window. It is not a global dedup: once a hash is evicted, a repeat of
// that line is processed again.
//
// The cache is not self-locking. Seen and Record form a check-then-insert
// pair, so callers serialize both behind their own line lock.
type DedupCache struct {
	capacity int
	order    []string
	members  map[string]struct{}
}

func NewDedupCache(capacity int) *DedupCache {
	if capacity <= 0 {
		capacity = 200
	}
	return &DedupCache{
		capacity: capacity,
		order:    make([]string, 0, capacity),
		members:  make(map[string]struct{}, capacity),
	}
}

func (d *DedupCache) Seen(hash string) bool {
	_, ok := d.members[hash]
	return ok
}

func (d *DedupCache) Record(hash string) {
	if d.Seen(hash) {
		return
	}
	if len(d.order) >= d.capacity {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.members, oldest)
	}
	d.order = append(d.order, hash)
	d.members[hash] = struct{}{}
}

func (d *DedupCache) Len() int {
	return len(d.order)
}
