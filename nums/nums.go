// Package nums derives the Nothing-Up-My-Sleeve generators that every
// other component in this module treats as public parameters: the
// Pedersen blinding base H, the Bulletproof vectors G_i/H_i, and the
// inner-product binding point U.  Every generator is produced by a
// deterministic try-and-increment hash-to-curve so that no party,
// including whoever wrote this package, knows its discrete log with
// respect to G.
package nums

import (
	"crypto/sha256"
	"encoding/binary"
	"sync"

	secp256k1 "github.com/xrplf/mpt-zkp"
)

// domainTag is prepended to every NUMS hash-to-curve input, tying the
// derivation to this specific proof system and curve so that a
// generator table computed here can never collide with one derived for
// a different protocol version.
const domainTag = "MPT_BULLETPROOF_V1_NUMS"

const curveTag = "secp256k1"

// Label identifies which generator family a point belongs to.
type Label string

const (
	// LabelG indexes the Bulletproof bit-commitment generators G_i.
	LabelG Label = "G"
	// LabelH indexes the Bulletproof bit-commitment generators H_i,
	// and LabelH with index 0 alone is also the Pedersen blinding base.
	LabelH Label = "H"
	// LabelU is the single Inner Product Argument binding generator.
	LabelU Label = "BP_U"
)

// HashToPoint deterministically derives the generator for (label, index)
// using try-and-increment: candidate compressed points
// 0x02 || SHA-256(domainTag || curveTag || label || index_be32 || ctr_be32)
// are attempted in order of increasing ctr until one parses.
func HashToPoint(label Label, index uint32) *secp256k1.Point {
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], index)

	for ctr := uint32(0); ; ctr++ {
		var ctrBuf [4]byte
		binary.BigEndian.PutUint32(ctrBuf[:], ctr)

		h := sha256.New()
		h.Write([]byte(domainTag))
		h.Write([]byte(curveTag))
		h.Write([]byte(label))
		h.Write(idxBuf[:])
		h.Write(ctrBuf[:])
		digest := h.Sum(nil)

		candidate := make([]byte, 0, secp256k1.CompressedPointSize)
		candidate = append(candidate, 0x02)
		candidate = append(candidate, digest...)

		p, err := secp256k1.Parse33(candidate)
		if err == nil {
			return p
		}
	}
}

// HGenerator returns the Pedersen blinding base H = hash_to_point("H", 0).
func HGenerator() *secp256k1.Point {
	return HashToPoint(LabelH, 0)
}

// UGenerator returns the single Inner Product Argument binding point.
func UGenerator() *secp256k1.Point {
	return HashToPoint(LabelU, 0)
}

// GeneratorVector returns [hash_to_point(label, 0), ..., hash_to_point(label, n-1)].
func GeneratorVector(label Label, n int) []*secp256k1.Point {
	out := make([]*secp256k1.Point, n)
	for i := 0; i < n; i++ {
		out[i] = HashToPoint(label, uint32(i))
	}
	return out
}

// table caches generator vectors across calls: the mapping is pure, so
// memoizing it is always sound, and the cache is append-only. Every read
// and write of the map holds mu, so it can be shared between concurrent
// callers.
type table struct {
	mu   sync.Mutex
	vecs map[string][]*secp256k1.Point
}

var cache = &table{vecs: make(map[string][]*secp256k1.Point)}

func cacheKey(label Label, n int) string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(n))
	return string(label) + string(buf[:])
}

// CachedGeneratorVector is GeneratorVector with memoization: repeated
// calls for the same (label, n) reuse a previously computed slice
// instead of re-running try-and-increment for every point.
func CachedGeneratorVector(label Label, n int) []*secp256k1.Point {
	key := cacheKey(label, n)

	cache.mu.Lock()
	if v, ok := cache.vecs[key]; ok {
		cache.mu.Unlock()
		return v
	}
	cache.mu.Unlock()

	v := GeneratorVector(label, n)

	cache.mu.Lock()
	cache.vecs[key] = v
	cache.mu.Unlock()

	return v
}
