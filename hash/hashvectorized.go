package hash

import "github.com/klauspost/cpuid/v2"

// HashVectorized computes many hashes sharing one modulo
var HashVectorized func(out []uint32, n []uint32, s []uint32, max uint32) = hashNotVectorized

var hashVectorizedParallelism = 1

func init() {
	if cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ) {
		hashVectorizedParallelism = 16
	} else if cpuid.CPU.Supports(cpuid.AVX2) {
		hashVectorizedParallelism = 8
	}
}

// HashVectorizedParallelism reports the recommended number of hashes to compute in one batch on this platform.
// Can't return 0.
func HashVectorizedParallelism() int {
	return hashVectorizedParallelism
}

// CPU describes the processor features relevant to hashing, for logging.
func CPU() (brand string, avx512 bool, cores int) {
	return cpuid.CPU.BrandName, cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ), cpuid.CPU.LogicalCores
}

// HashMany hashes all of n with a single salt and modulo, in batches of HashVectorizedParallelism.
func HashMany(n []uint32, s uint32, max uint32) (out []uint32) {
	out = make([]uint32, len(n))
	var par = HashVectorizedParallelism()
	var salts = make([]uint32, par)
	for i := range salts {
		salts[i] = s
	}
	for i := 0; i < len(n); i += par {
		var end = i + par
		if end > len(n) {
			end = len(n)
		}
		HashVectorized(out[i:end], n[i:end], salts[:end-i], max)
	}
	return
}

func hashNotVectorized(out []uint32, n []uint32, s []uint32, max uint32) {
	for i := range out {
		out[i] = Hash(n[i], s[i], max)
	}
}
