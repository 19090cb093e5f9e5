// Package synth implements sequence synthesis: turning a producer operation
// into a concrete Sequence by drawing an argument sequence for every input
// slot from the pool (§4.3 of the spec).
package synth

import (
	"math/rand"
	"sort"

	"ddic/internal/ddic/operation"
	"ddic/internal/ddic/pool"
	"ddic/internal/ddic/sequence"
	"ddic/internal/ddic/types"
)

// Synthesize attempts to build a Sequence terminating in op. It draws one
// sequence per input slot from p, uniformly at random among the candidates
// for that slot, then resolves each slot to a concrete statement index by
// walking inputTypes left to right and positionally claiming the n-th
// boxing-compatible index (§4.3 step 3). It reports false (⊥) if any slot's
// pool query comes back empty, or if a slot cannot be positionally
// satisfied.
func Synthesize(p *pool.SequenceCollection, op operation.TypedOperation, rng *rand.Rand) (sequence.Sequence, bool) {
	slots := op.InputTypes
	drawn := make([]sequence.Sequence, len(slots))

	for i, slot := range slots {
		candidates := p.Query(slot, slot.IsPrimitive(), false)
		if len(candidates) == 0 {
			return sequence.Empty, false
		}
		drawn[i] = candidates[rng.Intn(len(candidates))]
	}

	combined := sequence.Concat(drawn...)

	// typeToIndices maps each drawn statement's output type to the global
	// offsets at which it landed within combined, in order.
	typeToIndices := make(map[types.Type][]int)
	offset := 0
	for _, seq := range drawn {
		for i := 0; i < seq.Size(); i++ {
			t := seq.Variable(i)
			typeToIndices[t] = append(typeToIndices[t], offset+i)
		}
		offset += seq.Size()
	}

	used := make(map[types.Type]int)
	resolved := make([]int, len(slots))
	for i, slot := range slots {
		idx, ok := compatibleIndex(typeToIndices, slot, used[slot])
		if !ok {
			return sequence.Empty, false
		}
		used[slot]++
		resolved[i] = idx
	}

	return combined.Append(op, resolved), true
}

// compatibleIndex returns the n-th (0-indexed) global statement index whose
// output type is boxing-equivalent to slot, scanning every type bucket
// since boxing-equivalence is not keyed by Type equality alone.
func compatibleIndex(typeToIndices map[types.Type][]int, slot types.Type, n int) (int, bool) {
	var compatible []int
	for candidateType, indices := range typeToIndices {
		if !types.AreBoxingEquivalent(slot, candidateType) {
			continue
		}
		compatible = append(compatible, indices...)
	}
	if n >= len(compatible) {
		return 0, false
	}
	// Sorted rather than left in map-iteration order: an unsorted scan would
	// make the n-th occurrence depend on Go's unspecified map ordering,
	// breaking determinism (§8 property 5).
	sort.Ints(compatible)
	return compatible[n], true
}
