package model

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	fp "failure_predictor"

	ort "github.com/yalue/onnxruntime_go"
)

const testModelPath = "../../models/best_lof_model.onnx"

func skipIfNoModel(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testModelPath); os.IsNotExist(err) {
		t.Skip("model file not found; export the trained detector to models/best_lof_model.onnx first")
	}
}

func TestResolveInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		inputs  []ort.InputOutputInfo
		want    string
		wantErr bool
	}{
		{
			name:   "dynamic batch",
			inputs: []ort.InputOutputInfo{{Name: "X", Dimensions: ort.NewShape(-1, 8), DataType: ort.TensorElementDataTypeFloat}},
			want:   "X",
		},
		{
			name:   "dynamic width",
			inputs: []ort.InputOutputInfo{{Name: "X", Dimensions: ort.NewShape(-1, -1), DataType: ort.TensorElementDataTypeFloat}},
			want:   "X",
		},
		{
			name:    "wrong width",
			inputs:  []ort.InputOutputInfo{{Name: "X", Dimensions: ort.NewShape(-1, 7), DataType: ort.TensorElementDataTypeFloat}},
			wantErr: true,
		},
		{
			name:   "double input",
			inputs: []ort.InputOutputInfo{{Name: "X", Dimensions: ort.NewShape(-1, 8), DataType: ort.TensorElementDataTypeDouble}},
			want:   "X",
		},
		{
			name:    "int64 input",
			inputs:  []ort.InputOutputInfo{{Name: "X", Dimensions: ort.NewShape(-1, 8), DataType: ort.TensorElementDataTypeInt64}},
			wantErr: true,
		},
		{
			name:    "rank 1",
			inputs:  []ort.InputOutputInfo{{Name: "X", Dimensions: ort.NewShape(8), DataType: ort.TensorElementDataTypeFloat}},
			wantErr: true,
		},
		{
			name:    "no inputs",
			wantErr: true,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := resolveInput(tc.inputs)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got.Name)
				}
				return
			}
			if err != nil || got.Name != tc.want {
				t.Fatalf("got %q, %v; want %q", got.Name, err, tc.want)
			}
			if got.DataType != tc.inputs[0].DataType {
				t.Fatalf("data type: got %v, want %v", got.DataType, tc.inputs[0].DataType)
			}
		})
	}
}

func TestResolveLabelOutput(t *testing.T) {
	t.Parallel()

	outputs := []ort.InputOutputInfo{
		{Name: "scores", Dimensions: ort.NewShape(-1, 1), DataType: ort.TensorElementDataTypeFloat},
		{Name: "label", Dimensions: ort.NewShape(-1), DataType: ort.TensorElementDataTypeInt64},
	}
	got, err := resolveLabelOutput(outputs)
	if err != nil || got != "label" {
		t.Fatalf("got %q, %v", got, err)
	}

	if _, err := resolveLabelOutput(outputs[:1]); err == nil {
		t.Fatal("expected error without an int64 output")
	}
}

func TestModel_PredictNoRows(t *testing.T) {
	t.Parallel()

	m := &Model{}
	if _, err := m.Predict(context.Background(), nil); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestModel_PredictCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &Model{}
	_, err := m.Predict(ctx, []fp.FeatureVector{{}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	rows := []fp.FeatureVector{
		{1, 2, 3, 4, 5, 0, 0, 1},
		{0.1, 0, 0, 0, 0, 1, 0, 0},
	}
	doubles := flatten[float64](rows)
	if len(doubles) != 2*fp.FeatureCount {
		t.Fatalf("len: got %d", len(doubles))
	}
	if doubles[7] != 1 || doubles[8] != 0.1 || doubles[13] != 1 {
		t.Fatalf("row-major layout broken: %v", doubles)
	}
	if floats := flatten[float32](rows); floats[8] != float32(0.1) {
		t.Fatalf("float32 narrowing: got %v", floats[8])
	}
}

// stubRuntime replaces the runtime hooks and counts calls.
func stubRuntime(t *testing.T, initErr error) (inits, destroys *int) {
	t.Helper()
	inits, destroys = new(int), new(int)
	prevLib, prevInit, prevDestroy := ortSetLibrary, ortInit, ortDestroy
	ortSetLibrary = func(string) {}
	ortInit = func(...ort.EnvironmentOption) error { *inits++; return initErr }
	ortDestroy = func() error { *destroys++; return nil }
	t.Cleanup(func() {
		ortSetLibrary, ortInit, ortDestroy = prevLib, prevInit, prevDestroy
		ortEnv.refs = 0
	})
	return inits, destroys
}

func TestRuntimeEnvironment_RefCounted(t *testing.T) {
	inits, destroys := stubRuntime(t, nil)

	for i := 0; i < 2; i++ {
		if err := acquireORT(""); err != nil {
			t.Fatalf("acquire: %v", err)
		}
	}
	if *inits != 1 {
		t.Fatalf("inits after two acquires: got %d, want 1", *inits)
	}
	_ = releaseORT()
	if *destroys != 0 {
		t.Fatal("environment destroyed while a session is still open")
	}
	_ = releaseORT()
	if *destroys != 1 {
		t.Fatalf("destroys: got %d, want 1", *destroys)
	}

	// a later Load in the same process initializes again
	if err := acquireORT(""); err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	if *inits != 2 {
		t.Fatalf("inits after re-acquire: got %d, want 2", *inits)
	}
	_ = releaseORT()
}

func TestRuntimeEnvironment_InitFailureNotCounted(t *testing.T) {
	inits, destroys := stubRuntime(t, errors.New("no shared library"))

	if err := acquireORT(""); err == nil {
		t.Fatal("expected init error")
	}
	if err := acquireORT(""); err == nil {
		t.Fatal("expected init error on retry")
	}
	if *inits != 2 || ortEnv.refs != 0 {
		t.Fatalf("inits=%d refs=%d", *inits, ortEnv.refs)
	}
	_ = releaseORT()
	if *destroys != 0 {
		t.Fatal("release without a live environment must not destroy")
	}
}

func TestLoad_MissingModel(t *testing.T) {
	_, err := Load(Options{Path: "does-not-exist.onnx", IntraOpThreads: 1})
	if err == nil {
		t.Fatal("expected error for missing model file")
	}
	if ortEnv.refs != 0 {
		t.Fatalf("failed load left %d environment references", ortEnv.refs)
	}
}

func TestLoad_ColumnMismatchBeforeSession(t *testing.T) {
	inits, _ := stubRuntime(t, nil)

	swapped := trainedColumns()
	swapped[5], swapped[6] = swapped[6], swapped[5]
	raw, _ := json.Marshal(Metadata{Columns: swapped})
	path := filepath.Join(t.TempDir(), "metadata.json")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(Options{Path: "does-not-exist.onnx", MetadataPath: path, IntraOpThreads: 1})
	if !errors.Is(err, ErrColumnMismatch) {
		t.Fatalf("expected ErrColumnMismatch, got %v", err)
	}
	if *inits != 0 {
		t.Fatal("runtime initialized before metadata was checked")
	}
}

func TestModel_PredictSample(t *testing.T) {
	skipIfNoModel(t)

	m, err := Load(Options{Path: testModelPath, IntraOpThreads: 1})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer m.Close()

	row := fp.SensorReading{
		AirTemperature:     298.1,
		ProcessTemperature: 308.6,
		RotationalSpeed:    1551,
		Torque:             42.8,
		ToolWear:           0,
		Type:               fp.MachineTypeM,
	}.Features()

	scores, err := m.Predict(context.Background(), []fp.FeatureVector{row})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}
	if s := scores[0]; s != -1 && s != 1 {
		t.Fatalf("score must be -1 or 1, got %d", s)
	}
	t.Logf("input=%s output=%s score=%d", m.InputName(), m.OutputName(), scores[0])
}
