// The edistance plugin exports a Euclidean distance and a linear kernel.
// Build with: go build -buildmode=plugin -o edistance.so ./plugins/edistance
package main

import (
	"fmt"
	"math"
	"sync"

	"github.com/sgo-ml/sgo/sdk"
)

// EuclideanDistance is the L2 distance between feature vectors.
type EuclideanDistance struct{}

// NewEuclideanDistance creates a EuclideanDistance typed as a Distance.
func NewEuclideanDistance() sdk.Distance { return &EuclideanDistance{} }

func (*EuclideanDistance) Name() string { return "EuclideanDistance" }

func (*EuclideanDistance) Distance(lhs, rhs []float64) (float64, error) {
	if len(lhs) != len(rhs) {
		return 0, fmt.Errorf("dimension mismatch: %d != %d", len(lhs), len(rhs))
	}
	var sum float64
	for i := range lhs {
		diff := lhs[i] - rhs[i]
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// LinearKernel is the dot-product kernel.
type LinearKernel struct{}

// NewLinearKernel creates a LinearKernel typed as a Kernel.
func NewLinearKernel() sdk.Kernel { return &LinearKernel{} }

func (*LinearKernel) Name() string { return "LinearKernel" }

func (*LinearKernel) Compute(lhs, rhs []float64) (float64, error) {
	if len(lhs) != len(rhs) {
		return 0, fmt.Errorf("dimension mismatch: %d != %d", len(lhs), len(rhs))
	}
	var sum float64
	for i := range lhs {
		sum += lhs[i] * rhs[i]
	}
	return sum, nil
}

var manifest = sync.OnceValue(func() *sdk.Manifest {
	return sdk.BuildManifest("euclidean distance and linear kernel",
		sdk.Export("EuclideanDistance", NewEuclideanDistance),
		sdk.Export("LinearKernel", NewLinearKernel),
	)
})

// SgoManifest is the plugin entry point looked up by the host loader. The
// manifest is built once; every call returns the same cached value.
func SgoManifest() *sdk.Manifest { return manifest() }

func main() {}
