// Package corelib ships the classes built into the host binary itself,
// published through the same manifest mechanism external plugins use.
// Importing the package (for side effects) registers the manifest.
package corelib

import (
	"fmt"
	"math"
	"sync"

	"github.com/sgo-ml/sgo/internal/pluginmodule"
	"github.com/sgo-ml/sgo/sdk"
)

// PluginID is the registration ID of the built-in library.
const PluginID = "core"

// ManhattanDistance is the L1 distance between feature vectors.
type ManhattanDistance struct{}

// NewManhattanDistance creates a ManhattanDistance typed as a Distance.
func NewManhattanDistance() sdk.Distance { return &ManhattanDistance{} }

func (*ManhattanDistance) Name() string { return "ManhattanDistance" }

func (*ManhattanDistance) Distance(lhs, rhs []float64) (float64, error) {
	if len(lhs) != len(rhs) {
		return 0, fmt.Errorf("dimension mismatch: %d != %d", len(lhs), len(rhs))
	}
	var sum float64
	for i := range lhs {
		sum += math.Abs(lhs[i] - rhs[i])
	}
	return sum, nil
}

// MeanSquaredError scores predictions by their mean squared deviation.
type MeanSquaredError struct{}

// NewMeanSquaredError creates a MeanSquaredError typed as an Evaluator.
func NewMeanSquaredError() sdk.Evaluator { return &MeanSquaredError{} }

func (*MeanSquaredError) Name() string { return "MeanSquaredError" }

func (*MeanSquaredError) Evaluate(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("dimension mismatch: %d != %d", len(predicted), len(actual))
	}
	if len(predicted) == 0 {
		return 0, fmt.Errorf("nothing to evaluate")
	}
	var sum float64
	for i := range predicted {
		d := predicted[i] - actual[i]
		sum += d * d
	}
	return sum / float64(len(predicted)), nil
}

// Manifest returns the built-in library's manifest. Repeated calls return
// the same cached value.
var Manifest = sync.OnceValue(func() *sdk.Manifest {
	return sdk.BuildManifest("built-in distances and evaluators",
		sdk.Export("ManhattanDistance", NewManhattanDistance),
		sdk.Export("MeanSquaredError", NewMeanSquaredError),
	)
})

func init() {
	pluginmodule.RegisterBuiltinManifest(PluginID, Manifest())
}
