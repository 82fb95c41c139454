package sampler

// Trace holds optional step-by-step per-trajectory records for debugging.
// Every slice is indexed [trajectory][iteration-in-run].
type Trace struct {
	Temperatures    [][]float64
	AcceptanceRates [][]float64
	Scores          [][]float64
	Energies        [][]float64
	Uncertainties   [][]float64
	STUN            [][]float64
}

func newTrace(trajectories int) *Trace {
	return &Trace{
		Temperatures:    make([][]float64, trajectories),
		AcceptanceRates: make([][]float64, trajectories),
		Scores:          make([][]float64, trajectories),
		Energies:        make([][]float64, trajectories),
		Uncertainties:   make([][]float64, trajectories),
		STUN:            make([][]float64, trajectories),
	}
}

func (t *Trace) record(i int, temperature, acceptanceRate, score, energy, uncertainty float64, stun float64, stunEnabled bool) {
	t.Temperatures[i] = append(t.Temperatures[i], temperature)
	t.AcceptanceRates[i] = append(t.AcceptanceRates[i], acceptanceRate)
	t.Scores[i] = append(t.Scores[i], score)
	t.Energies[i] = append(t.Energies[i], energy)
	t.Uncertainties[i] = append(t.Uncertainties[i], uncertainty)
	if stunEnabled {
		t.STUN[i] = append(t.STUN[i], stun)
	}
}
