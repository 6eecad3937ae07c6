package mapper

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// Fingerprint defaults.
const (
	DefaultFingerprintHashes = 64
	DefaultShingleSize       = 3

	shingleSeparator = "|"
)

// Mixing constants of the splitmix64 finalizer.
const (
	baseSeed   = 0x517cc1b727220a95
	mixShift1  = 30
	mixMul1    = 0xbf58476d1ce4e5b9
	mixShift2  = 27
	mixMul2    = 0x94d049bb133111eb
	mixShift3  = 31
	seedStride = 0x9e3779b97f4a7c15
)

// Fingerprint is a MinHash signature over k-shingles of an operation's
// normalized leaf texts. Comparing two fingerprints estimates the Jaccard
// similarity of the bodies without aligning them.
type Fingerprint struct {
	mins   []uint64
	tokens int
}

// NewFingerprint computes the fingerprint of op's body with numHashes hash
// functions over windows of shingleSize consecutive leaves.
func NewFingerprint(op *uml.Operation, numHashes, shingleSize int) *Fingerprint {
	if numHashes <= 0 {
		numHashes = DefaultFingerprintHashes
	}

	if shingleSize <= 0 {
		shingleSize = DefaultShingleSize
	}

	fp := &Fingerprint{mins: make([]uint64, numHashes)}
	for i := range fp.mins {
		fp.mins[i] = math.MaxUint64
	}

	seeds := generateSeeds(numHashes)

	for _, shingle := range shingles(op, shingleSize) {
		fp.add(shingle, seeds)
	}

	return fp
}

func shingles(op *uml.Operation, k int) []string {
	leaves := op.Body.Leaves()

	texts := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		texts = append(texts, normalize(leaf.String()))
	}

	if len(texts) == 0 {
		return nil
	}

	k = min(k, len(texts))
	out := make([]string, 0, len(texts)-k+1)

	for i := 0; i+k <= len(texts); i++ {
		out = append(out, strings.Join(texts[i:i+k], shingleSeparator))
	}

	return out
}

func (f *Fingerprint) add(token string, seeds []uint64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(token))
	base := h.Sum64()

	for i, seed := range seeds {
		if v := mix(base ^ seed); v < f.mins[i] {
			f.mins[i] = v
		}
	}

	f.tokens++
}

// Similarity estimates the Jaccard index of the two shingle sets. Two empty
// bodies are fully similar; an empty and a non-empty body are not.
func (f *Fingerprint) Similarity(other *Fingerprint) float64 {
	if f.tokens == 0 || other.tokens == 0 {
		if f.tokens == other.tokens {
			return 1
		}

		return 0
	}

	n := min(len(f.mins), len(other.mins))
	matches := 0

	for i := range n {
		if f.mins[i] == other.mins[i] {
			matches++
		}
	}

	return float64(matches) / float64(n)
}

// Len returns the number of hash functions.
func (f *Fingerprint) Len() int {
	return len(f.mins)
}

func mix(x uint64) uint64 {
	x = (x ^ (x >> mixShift1)) * mixMul1
	x = (x ^ (x >> mixShift2)) * mixMul2

	return x ^ (x >> mixShift3)
}

func generateSeeds(n int) []uint64 {
	seeds := make([]uint64, n)
	state := uint64(baseSeed)

	for i := range seeds {
		state += seedStride
		seeds[i] = mix(state)
	}

	return seeds
}
