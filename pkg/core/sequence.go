package core

import (
	"math/rand"
	"strconv"
	"strings"
)

// Sequence is a fixed-capacity ordered array of symbol codes. Codes run from 1
// to the alphabet size; 0 is padding and may only appear as a suffix. The
// active length of a sequence is the count of leading non-zero positions.
type Sequence []int

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Equal reports whether two sequences are symbol-array-identical across the
// full padded array.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// ActiveLength returns the count of non-zero positions. Padding is suffix-only
// by construction, so this equals the index of the first zero.
func (s Sequence) ActiveLength() int {
	n := 0
	for _, v := range s {
		if v != 0 {
			n++
		}
	}
	return n
}

// Key returns a canonical string form of the full padded array, suitable for
// exact-equality deduplication and storage.
func (s Sequence) Key() string {
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// ParseSequence parses the Key form back into a sequence padded to capacity.
func ParseSequence(key string, capacity int) (Sequence, error) {
	seq := make(Sequence, 0, capacity)
	for _, part := range strings.Split(key, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		seq = append(seq, v)
	}
	for len(seq) < capacity {
		seq = append(seq, 0)
	}
	return seq, nil
}

// NewRandomSequence produces one valid random sequence respecting the length
// bounds of the configuration. With fixed lengths the entire capacity is
// filled with uniform random symbols; with variable lengths a uniform random
// active length in [MinLength, MaxLength) is chosen and the remainder is
// zero-padded.
func NewRandomSequence(rng *rand.Rand, cfg SamplerConfig) Sequence {
	seq := make(Sequence, cfg.MaxLength)
	if cfg.VariableLength {
		length := cfg.MinLength
		if cfg.MaxLength > cfg.MinLength {
			length += rng.Intn(cfg.MaxLength - cfg.MinLength)
		}
		for i := 0; i < length; i++ {
			seq[i] = 1 + rng.Intn(cfg.AlphabetSize)
		}
		return seq
	}
	for i := range seq {
		seq[i] = 1 + rng.Intn(cfg.AlphabetSize)
	}
	return seq
}

// CloneEnsemble deep-copies a whole trajectory ensemble.
func CloneEnsemble(ensemble []Sequence) []Sequence {
	out := make([]Sequence, len(ensemble))
	for i, seq := range ensemble {
		out[i] = seq.Clone()
	}
	return out
}
