package model

import (
	"fmt"
	"sync"

	fp "failure_predictor"

	ort "github.com/yalue/onnxruntime_go"
)

// Runtime hooks, swapped out in tests.
var (
	ortSetLibrary = ort.SetSharedLibraryPath
	ortInit       = ort.InitializeEnvironment
	ortDestroy    = ort.DestroyEnvironment
)

// ortEnv reference-counts the process-wide ONNX Runtime environment. It is
// created by the first open session and destroyed with the last one.
var ortEnv struct {
	mu   sync.Mutex
	refs int
}

func acquireORT(libPath string) error {
	ortEnv.mu.Lock()
	defer ortEnv.mu.Unlock()
	if ortEnv.refs == 0 {
		if libPath != "" {
			ortSetLibrary(libPath)
		}
		if err := ortInit(); err != nil {
			return err
		}
	}
	ortEnv.refs++
	return nil
}

func releaseORT() error {
	ortEnv.mu.Lock()
	defer ortEnv.mu.Unlock()
	if ortEnv.refs == 0 {
		return nil
	}
	ortEnv.refs--
	if ortEnv.refs == 0 {
		return ortDestroy()
	}
	return nil
}

// onnxSession wraps a DynamicAdvancedSession. Tensors are allocated per call,
// so Run may be invoked from many goroutines at once.
type onnxSession struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	inputType  ort.TensorElementDataType
	outputName string
}

func newONNXSession(modelPath, libPath string, threads int) (*onnxSession, error) {
	if err := acquireORT(libPath); err != nil {
		return nil, fmt.Errorf("onnx: failed to initialize runtime: %w", err)
	}
	s, err := openSession(modelPath, threads)
	if err != nil {
		_ = releaseORT()
		return nil, err
	}
	return s, nil
}

func openSession(modelPath string, threads int) (*onnxSession, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to read model info: %w", err)
	}
	input, err := resolveInput(inputs)
	if err != nil {
		return nil, err
	}
	outputName, err := resolveLabelOutput(outputs)
	if err != nil {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session options: %w", err)
	}
	defer opts.Destroy()
	if err := opts.SetIntraOpNumThreads(threads); err != nil {
		return nil, fmt.Errorf("onnx: failed to set intra-op threads: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{input.Name}, []string{outputName}, opts)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create session: %w", err)
	}

	return &onnxSession{
		session:    session,
		inputName:  input.Name,
		inputType:  input.DataType,
		outputName: outputName,
	}, nil
}

// resolveInput expects a single float or double tensor whose last dimension
// is the feature width (or dynamic).
func resolveInput(inputs []ort.InputOutputInfo) (ort.InputOutputInfo, error) {
	if len(inputs) != 1 {
		return ort.InputOutputInfo{}, fmt.Errorf("onnx: expected 1 model input, got %d", len(inputs))
	}
	in := inputs[0]
	switch in.DataType {
	case ort.TensorElementDataTypeFloat, ort.TensorElementDataTypeDouble:
	default:
		return ort.InputOutputInfo{}, fmt.Errorf("onnx: input %q has type %v, want float or double", in.Name, in.DataType)
	}
	dims := in.Dimensions
	if len(dims) != 2 {
		return ort.InputOutputInfo{}, fmt.Errorf("onnx: input %q has shape %v, want [batch, %d]", in.Name, dims, fp.FeatureCount)
	}
	if w := dims[1]; w != fp.FeatureCount && w > 0 {
		return ort.InputOutputInfo{}, fmt.Errorf("%w: input %q is %d wide, want %d", ErrColumnMismatch, in.Name, w, fp.FeatureCount)
	}
	return in, nil
}

// resolveLabelOutput picks the int64 label tensor. Outlier detectors exported
// from scikit-learn also emit a float "scores" tensor, which is ignored.
func resolveLabelOutput(outputs []ort.InputOutputInfo) (string, error) {
	for _, out := range outputs {
		if out.DataType == ort.TensorElementDataTypeInt64 {
			return out.Name, nil
		}
	}
	return "", fmt.Errorf("onnx: model has no int64 label output")
}

// infer runs the model over rows and copies the label tensor out before it
// is destroyed. Double inputs get the features unchanged; float inputs get
// them narrowed to float32.
func (s *onnxSession) infer(rows []fp.FeatureVector) ([]int64, error) {
	batch := int64(len(rows))
	in, err := s.inputTensor(rows)
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create input tensor: %w", err)
	}
	defer in.Destroy()

	out, err := ort.NewEmptyTensor[int64](ort.NewShape(batch))
	if err != nil {
		return nil, fmt.Errorf("onnx: failed to create output tensor: %w", err)
	}
	defer out.Destroy()

	if err := s.session.Run([]ort.Value{in}, []ort.Value{out}); err != nil {
		return nil, fmt.Errorf("onnx: inference failed: %w", err)
	}

	src := out.GetData()
	scores := make([]int64, len(src))
	copy(scores, src)
	return scores, nil
}

func (s *onnxSession) inputTensor(rows []fp.FeatureVector) (ort.Value, error) {
	shape := ort.NewShape(int64(len(rows)), fp.FeatureCount)
	if s.inputType == ort.TensorElementDataTypeDouble {
		return ort.NewTensor(shape, flatten[float64](rows))
	}
	return ort.NewTensor(shape, flatten[float32](rows))
}

func flatten[T float32 | float64](rows []fp.FeatureVector) []T {
	flat := make([]T, 0, len(rows)*fp.FeatureCount)
	for _, row := range rows {
		for _, v := range row {
			flat = append(flat, T(v))
		}
	}
	return flat
}

func (s *onnxSession) close() error {
	if err := s.session.Destroy(); err != nil {
		return fmt.Errorf("onnx: destroy session: %w", err)
	}
	return releaseORT()
}
