package sim

import (
	"hash/fnv"
	"math/rand"
)

// PartitionedRNG provides isolated RNG streams per subsystem for deterministic simulation
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a new partitioned RNG with the given master seed
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns an RNG for the given subsystem name
// The subsystem RNG is created lazily and deterministically derived from master seed
// Multiple calls with same subsystem name return the same RNG instance
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, exists := p.subsystems[name]; exists {
		return rng
	}

	subsystemSeed := p.deriveSeed(name)
	rng := rand.New(rand.NewSource(subsystemSeed))
	p.subsystems[name] = rng
	return rng
}

// deriveSeed deterministically derives a subsystem seed from master seed and subsystem name
// Uses hash-based derivation to ensure order-independence:
// subsystemSeed = masterSeed XOR hash(subsystemName)
func (p *PartitionedRNG) deriveSeed(subsystemName string) int64 {
	h := fnv.New64a()
	h.Write([]byte(subsystemName))
	nameHash := int64(h.Sum64())

	return p.masterSeed ^ nameHash
}

// Subsystem name constants for common subsystems
const (
	SubsystemCity  = "city"
	SubsystemVirus = "virus"
)
