// SPDX-License-Identifier: MIT

package view

import (
	"fmt"
	"sync/atomic"
)

// arenaOwners hands out a distinct owner id to every arena.
var arenaOwners atomic.Uint64

// ClusterID is a stable handle to a cluster owned by one View. A handle stays
// valid until its cluster is reaped; reused slots carry a new generation, so a
// stale handle is rejected rather than aliasing a newer cluster.
// Handles carry the id of the View that issued them and are rejected by any
// other View. The zero ClusterID never refers to a cluster.
type ClusterID struct {
	owner uint64
	slot  uint32
	gen   uint32
}

// IsZero reports whether id is the zero handle.
func (id ClusterID) IsZero() bool { return id.gen == 0 }

// String renders the handle as "v<owner>/c<slot>.<gen>".
func (id ClusterID) String() string { return fmt.Sprintf("v%d/c%d.%d", id.owner, id.slot, id.gen) }

type arenaSlot struct {
	c   *Cluster
	gen uint32
}

// clusterArena stores clusters in slots addressed by ClusterID. Freed slots
// are reused LIFO; iteration is in slot order, which makes the candidate order
// of a sweep a function of the mutation history only.
type clusterArena struct {
	owner uint64
	slots []arenaSlot
	free  []uint32
	live  int
}

func (a *clusterArena) alloc(c *Cluster) ClusterID {
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[slot]
		s.gen++
		s.c = c
		a.live++
		return ClusterID{owner: a.owner, slot: slot, gen: s.gen}
	}
	a.slots = append(a.slots, arenaSlot{c: c, gen: 1})
	a.live++

	return ClusterID{owner: a.owner, slot: uint32(len(a.slots) - 1), gen: 1}
}

func newClusterArena() clusterArena {
	return clusterArena{owner: arenaOwners.Add(1)}
}

func (a *clusterArena) get(id ClusterID) (*Cluster, bool) {
	if id.gen == 0 || id.owner != a.owner || int(id.slot) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[id.slot]
	if s.c == nil || s.gen != id.gen {
		return nil, false
	}

	return s.c, true
}

func (a *clusterArena) release(id ClusterID) bool {
	if _, ok := a.get(id); !ok {
		return false
	}
	a.slots[id.slot].c = nil
	a.free = append(a.free, id.slot)
	a.live--

	return true
}

// each calls fn for every allocated cluster in slot order; fn returning false stops.
func (a *clusterArena) each(fn func(ClusterID, *Cluster) bool) {
	for i, s := range a.slots {
		if s.c == nil {
			continue
		}
		if !fn(ClusterID{owner: a.owner, slot: uint32(i), gen: s.gen}, s.c) {
			return
		}
	}
}
