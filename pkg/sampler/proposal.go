package sampler

import (
	"github.com/XiaoConstantine/stun-go/pkg/core"
)

// propose builds the candidate ensemble for one iteration from a stable
// snapshot of the current state. For every trajectory independently, the
// draw-selected position is overwritten with the draw-selected symbol; with
// variable lengths enabled the active length may additionally grow or shrink
// by one position. Proposals are always constructed for every trajectory:
// the scoring collaborator evaluates full ensembles regardless, so there is
// no early-exit path.
func (s *Sampler) propose(ind int) []core.Sequence {
	prop := core.CloneEnsemble(s.configs)
	for i := range prop {
		prop[i][s.stream.mutationPositions[i][ind]] = s.stream.mutationSymbols[i][ind]

		if !s.cfg.VariableLength {
			continue
		}
		switch s.stream.lengthDirections[i][ind] {
		case 0:
			// no length change
		case 1:
			// extend by one position, bounded by max length
			nnz := prop[i].ActiveLength()
			if nnz < s.cfg.MaxLength {
				prop[i][nnz] = s.stream.extensionSymbols[i][ind]
			}
		case -1:
			// contract by one position, bounded by min length
			nnz := prop[i].ActiveLength()
			if nnz > s.cfg.MinLength {
				prop[i][nnz-1] = 0
			}
		}
	}
	return prop
}
