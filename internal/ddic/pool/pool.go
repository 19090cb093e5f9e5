// Package pool implements SequenceCollection, the external value pool DDIC
// reads from and deposits into (§6 of the spec).
package pool

import (
	"sort"
	"sync"

	"ddic/internal/ddic/sequence"
	"ddic/internal/ddic/types"
)

// SequenceCollection is a concurrency-safe mapping from Type to the set of
// Sequences whose terminal statement produces that type.
type SequenceCollection struct {
	mu      sync.Mutex
	byType  map[types.Type][]sequence.Sequence
	seen    map[string]struct{}
	entries int
}

// New returns an empty SequenceCollection.
func New() *SequenceCollection {
	return &SequenceCollection{
		byType: make(map[types.Type][]sequence.Sequence),
		seen:   make(map[string]struct{}),
	}
}

// Add inserts seq, keyed by its terminal type. It is idempotent on
// structural equality: re-adding a sequence with the same fingerprint is a
// no-op, reported via the returned bool.
func (c *SequenceCollection) Add(seq sequence.Sequence) bool {
	if seq.Size() == 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	fp := seq.Fingerprint()
	if _, exists := c.seen[fp]; exists {
		return false
	}
	c.seen[fp] = struct{}{}

	t := seq.TerminalType()
	c.byType[t] = append(c.byType[t], seq)
	c.entries++
	return true
}

// Query returns sequences whose terminal variable satisfies the requested
// type per exactTypeMatch/onlyReceivers (§6):
//
//   - exactTypeMatch: the terminal type must equal t exactly, rather than
//     merely be assignable to it.
//   - onlyReceivers: the terminal type must be usable as a method
//     receiver, i.e. not Type.IsNonreceiverType().
//
// Order is unspecified by §6. With exactTypeMatch, t's own sequences are
// returned in insertion order. Otherwise the order is a deterministic
// function of pool contents (sorted by candidate type name, then by
// sequence fingerprint within a type), so that a caller drawing uniformly
// at random from the result gets the same draw for the same (pool
// contents, seed).
func (c *SequenceCollection) Query(t types.Type, exactTypeMatch, onlyReceivers bool) []sequence.Sequence {
	c.mu.Lock()
	defer c.mu.Unlock()

	if exactTypeMatch {
		matches := c.byType[t]
		if onlyReceivers && t.IsNonreceiverType() {
			return nil
		}
		out := make([]sequence.Sequence, len(matches))
		copy(out, matches)
		return out
	}

	// Map iteration order is randomized per-process, which would make the
	// n-th candidate drawn by synth.Synthesize's rng.Intn depend on that
	// randomization rather than on (pool contents, seed) alone (§8 property
	// 5). Candidate types are sorted by name before their sequences are
	// appended, and each type's own sequences by fingerprint, so the
	// returned order is a pure function of pool contents.
	var candidateTypes []types.Type
	for candidateType := range c.byType {
		if !t.IsAssignableFrom(candidateType) {
			continue
		}
		if onlyReceivers && candidateType.IsNonreceiverType() {
			continue
		}
		candidateTypes = append(candidateTypes, candidateType)
	}
	sort.Slice(candidateTypes, func(i, j int) bool {
		return candidateTypes[i].String() < candidateTypes[j].String()
	})

	var out []sequence.Sequence
	for _, candidateType := range candidateTypes {
		seqs := append([]sequence.Sequence(nil), c.byType[candidateType]...)
		sort.Slice(seqs, func(i, j int) bool {
			return seqs[i].Fingerprint() < seqs[j].Fingerprint()
		})
		out = append(out, seqs...)
	}
	return out
}

// Size returns the total number of distinct sequences held, across all types.
func (c *SequenceCollection) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries
}

// Types returns a snapshot of the types currently represented in the pool,
// used by the ddicctl watch TUI to render pool growth per type.
func (c *SequenceCollection) Types() []types.Type {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Type, 0, len(c.byType))
	for t := range c.byType {
		out = append(out, t)
	}
	return out
}

// CountForType returns the number of sequences held for exactly t.
func (c *SequenceCollection) CountForType(t types.Type) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byType[t])
}
