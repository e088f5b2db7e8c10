// Package providers - Execution provider configuration for the
// onnxruntime session.
package providers

import (
	ort "github.com/yalue/onnxruntime_go"
)

// ProviderBackend represents an ONNX Runtime execution provider.
type ProviderBackend string

const (
	// CPUProviderBackend runs inference on the CPU.
	CPUProviderBackend ProviderBackend = "cpu"
	// CoreMLProviderBackend runs inference through CoreML on Apple
	// hardware.
	CoreMLProviderBackend ProviderBackend = "coreml"
)

// Config selects the execution provider and its threading behavior.
type Config struct {
	// Backend specifies the execution provider to use.
	Backend ProviderBackend `json:"backend" yaml:"backend"`
	// IntraOpThreads is the number of threads used to parallelize
	// execution within graph nodes. Zero uses the runtime default.
	IntraOpThreads int `json:"intra_op_threads" yaml:"intra_op_threads"`
	// InterOpThreads is the number of threads used to parallelize
	// execution across separate graph nodes. Zero uses the runtime
	// default.
	InterOpThreads int `json:"inter_op_threads" yaml:"inter_op_threads"`
}

// DefaultConfig returns a CPU configuration with balanced threading.
func DefaultConfig() Config {
	return Config{
		Backend:        CPUProviderBackend,
		IntraOpThreads: 4,
		InterOpThreads: 2,
	}
}

// Apply sets the provider configuration on session options.
//
// Arguments:
//   - options: The session options to configure.
//
// Returns:
//   - error: An error if the execution provider cannot be enabled.
func (c Config) Apply(options *ort.SessionOptions) error {
	if err := options.SetIntraOpNumThreads(c.IntraOpThreads); err != nil {
		return err
	}
	if err := options.SetInterOpNumThreads(c.InterOpThreads); err != nil {
		return err
	}
	if err := options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended); err != nil {
		return err
	}

	if c.Backend == CoreMLProviderBackend {
		if err := options.AppendExecutionProviderCoreML(0); err != nil {
			return err
		}
	}

	return nil
}
