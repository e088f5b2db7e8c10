// Package inference - Session boundary to the onnxruntime engine.
package inference

import (
	"image"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/photoseek/go-detect/inference/providers"
)

// Config describes the model file and its fixed tensor shapes.
type Config struct {
	// ModelPath is the path to the ONNX model file.
	ModelPath string `json:"model_path" yaml:"model_path"`
	// InputShape defines the model input dimensions (width, height).
	InputShape image.Point `json:"input_shape" yaml:"input_shape"`
	// OutputRows and OutputCols define the flat output buffer layout.
	OutputRows int `json:"output_rows" yaml:"output_rows"`
	OutputCols int `json:"output_cols" yaml:"output_cols"`
	// InputName and OutputName are the model's tensor names.
	InputName  string `json:"input_name" yaml:"input_name"`
	OutputName string `json:"output_name" yaml:"output_name"`
	// Provider is the execution provider configuration.
	Provider providers.Config `json:"provider" yaml:"provider"`
}

// DefaultConfig returns a configuration for the reference YOLOv5 COCO
// model: 640x640 input, 25200x85 output.
func DefaultConfig(modelPath string) Config {
	return Config{
		ModelPath:  modelPath,
		InputShape: image.Point{X: 640, Y: 640},
		OutputRows: 25200,
		OutputCols: 85,
		InputName:  "images",
		OutputName: "output0",
		Provider:   providers.DefaultConfig(),
	}
}

// Session wraps an onnxruntime session with fixed input and output
// tensors.
//
// The underlying runtime session is not reentrant: Run is serialized
// with a mutex, so a Session may be shared between goroutines but only
// one inference executes at a time. Create independent sessions for
// parallel inference.
type Session struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	mu      sync.Mutex
}

// NewSession creates an onnxruntime session for the configured model.
//
// Arguments:
//   - config: The model path, tensor shapes and provider selection.
//
// Returns:
//   - *Session: The ready-to-run session.
//   - error: An error if the runtime library, model file, or session
//     setup fails.
func NewSession(config Config) (*Session, error) {
	libPath := GetSharedLibPath()
	if _, err := os.Stat(libPath); os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "ONNX Runtime library not found at %s", libPath)
	}
	if _, err := os.Stat(config.ModelPath); os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "model file not found: %s", config.ModelPath)
	}

	ort.SetSharedLibraryPath(libPath)
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, errors.Wrap(err, "initializing ORT environment")
	}

	inputShape := ort.NewShape(1, 3, int64(config.InputShape.Y), int64(config.InputShape.X))
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, errors.Wrap(err, "creating input tensor")
	}

	outputShape := ort.NewShape(1, int64(config.OutputRows), int64(config.OutputCols))
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrap(err, "creating output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrap(err, "creating ORT session options")
	}
	defer options.Destroy()

	if err := config.Provider.Apply(options); err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(err, "enabling %s execution provider", config.Provider.Backend)
	}

	session, err := ort.NewAdvancedSession(
		config.ModelPath,
		[]string{config.InputName},
		[]string{config.OutputName},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(err, "creating session for %s", config.ModelPath)
	}

	log.Printf("ONNX session initialized: model=%s input=%dx%d output=%dx%d provider=%s",
		config.ModelPath, config.InputShape.X, config.InputShape.Y,
		config.OutputRows, config.OutputCols, config.Provider.Backend)

	return &Session{
		session: session,
		input:   inputTensor,
		output:  outputTensor,
	}, nil
}

// Run executes one inference over a prepared CHW input tensor and
// returns a copy of the flat output buffer.
//
// Arguments:
//   - input: The CHW float tensor; its length must match the input
//     tensor exactly.
//
// Returns:
//   - []float32: A freshly allocated copy of the output buffer.
//   - error: An error if the input size is wrong or the run fails.
func (s *Session) Run(input []float32) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.input.GetData()
	if len(input) != len(data) {
		return nil, errors.Errorf("input holds %d floats, tensor requires %d", len(input), len(data))
	}
	copy(data, input)

	if err := s.session.Run(); err != nil {
		return nil, errors.Wrap(err, "inference run")
	}

	out := s.output.GetData()
	result := make([]float32, len(out))
	copy(result, out)
	return result, nil
}

// Close releases the resources associated with the Session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.output != nil {
		s.output.Destroy()
		s.output = nil
	}
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
}

// GetSharedLibPath returns the expected location of the onnxruntime
// shared library for the current platform.
func GetSharedLibPath() string {
	if runtime.GOOS == "windows" {
		if runtime.GOARCH == "amd64" {
			return "../third_party/onnxruntime.dll"
		}
	}
	if runtime.GOOS == "darwin" {
		if runtime.GOARCH == "arm64" {
			return "../third_party/onnxruntime_arm64.dylib"
		}
		if runtime.GOARCH == "amd64" {
			return "../third_party/onnxruntime_amd64.dylib"
		}
	}
	if runtime.GOOS == "linux" {
		if runtime.GOARCH == "arm64" {
			return "../third_party/onnxruntime_arm64.so"
		}
		return "../third_party/onnxruntime.so"
	}
	panic("Unable to find a version of the onnxruntime library supporting this system.")
}
