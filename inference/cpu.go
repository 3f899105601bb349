package inference

import "runtime"

import "github.com/klauspost/cpuid/v2"
import "github.com/sirupsen/logrus"

// Workers returns the default evaluation parallelism, the logical core count.
func Workers() int {
	if cpuid.CPU.LogicalCores > 0 {
		return cpuid.CPU.LogicalCores
	}
	return runtime.NumCPU()
}

// SetWorkers overrides the evaluation parallelism. Zero restores the default.
func (m *Model) SetWorkers(n int) {
	m.workers = n
}

func (m *Model) limit() int {
	if m.workers > 0 {
		return m.workers
	}
	return Workers()
}

// CPUFields describes the host CPU for log output.
func CPUFields() logrus.Fields {
	return logrus.Fields{
		"cpu":     cpuid.CPU.BrandName,
		"cores":   cpuid.CPU.PhysicalCores,
		"threads": cpuid.CPU.LogicalCores,
		"avx512":  cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ),
	}
}
