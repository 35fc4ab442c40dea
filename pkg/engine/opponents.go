package engine

import (
	"sort"
	"sync"
)

// Opponent is the last reported position of a remote player.
type Opponent struct {
	ID   string
	X, Y float64
}

// Opponents maps connection ids to last-known positions. The network
// goroutine writes it while the frame loop reads snapshots.
type Opponents struct {
	mu   sync.RWMutex
	byID map[string]Opponent
}

// NewOpponents returns an empty opponent map.
func NewOpponents() *Opponents {
	return &Opponents{byID: make(map[string]Opponent)}
}

// Move records a new x for id, creating the entry on first sight.
func (o *Opponents) Move(id string, x float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.byID[id] = Opponent{ID: id, X: x, Y: OpponentY}
}

// Remove forgets id. Unknown ids are ignored.
func (o *Opponents) Remove(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.byID, id)
}

// Get returns the opponent stored under id.
func (o *Opponents) Get(id string) (Opponent, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	op, ok := o.byID[id]
	return op, ok
}

// Len returns the number of known opponents.
func (o *Opponents) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.byID)
}

// Snapshot copies the current opponents, ordered by id so draw order is stable.
func (o *Opponents) Snapshot() []Opponent {
	o.mu.RLock()
	out := make([]Opponent, 0, len(o.byID))
	for _, op := range o.byID {
		out = append(out, op)
	}
	o.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
