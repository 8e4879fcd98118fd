package coordinator

// pairingPool holds connections waiting for a stranger partner plus the
// active pairing links. The waiting pool is a FIFO queue backed by a
// presence set so matching order stays deterministic. Access is serialized
// by the coordinator.
//
// Invariants maintained here:
//   - a connection ID is never both waiting and linked
//   - links are symmetric: links[a] == b implies links[b] == a
type pairingPool struct {
	queue  []string
	queued map[string]struct{}
	links  map[string]string
}

func newPairingPool() *pairingPool {
	return &pairingPool{
		queued: make(map[string]struct{}),
		links:  make(map[string]string),
	}
}

func (p *pairingPool) enqueue(connID string) {
	if _, already := p.queued[connID]; already {
		return
	}
	p.queue = append(p.queue, connID)
	p.queued[connID] = struct{}{}
}

// dequeue pops the oldest waiting connection.
func (p *pairingPool) dequeue() (string, bool) {
	for len(p.queue) > 0 {
		id := p.queue[0]
		p.queue = p.queue[1:]
		if _, ok := p.queued[id]; ok {
			delete(p.queued, id)
			return id, true
		}
		// Entry was removed out of band; skip the tombstone.
	}
	return "", false
}

// removeWaiting takes a connection out of the queue. It reports whether the
// connection was waiting.
func (p *pairingPool) removeWaiting(connID string) bool {
	if _, ok := p.queued[connID]; !ok {
		return false
	}
	delete(p.queued, connID)
	for i, id := range p.queue {
		if id == connID {
			p.queue = append(p.queue[:i], p.queue[i+1:]...)
			break
		}
	}
	return true
}

func (p *pairingPool) isWaiting(connID string) bool {
	_, ok := p.queued[connID]
	return ok
}

func (p *pairingPool) waitingCount() int {
	return len(p.queued)
}

// link binds two connections symmetrically.
func (p *pairingPool) link(a, b string) {
	p.links[a] = b
	p.links[b] = a
}

func (p *pairingPool) partner(connID string) (string, bool) {
	partner, ok := p.links[connID]
	return partner, ok
}

// unlink tears down the link from either side. Calling it on an already
// unlinked connection is a no-op, which makes teardown idempotent.
func (p *pairingPool) unlink(connID string) {
	partner, ok := p.links[connID]
	if !ok {
		return
	}
	delete(p.links, connID)
	delete(p.links, partner)
}

func (p *pairingPool) linkCount() int {
	return len(p.links) / 2
}
