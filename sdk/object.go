// Package sdk is the public surface shared by plugin authors and hosts.
//
// A plugin binary exports concrete classes through a Manifest: an immutable
// catalog mapping registration identifiers to type-erased factories. Hosts
// look factories up by name with ClassByName and mint instances without any
// compile-time knowledge of the concrete types involved.
package sdk

// Object is the universal base capability. Every class exported through a
// manifest must be usable as an Object, even when it also exposes a more
// specific capability.
type Object interface {
	// Name returns the class name of the object.
	Name() string
}

// Distance measures dissimilarity between two feature vectors.
type Distance interface {
	Object

	// Distance computes the distance between lhs and rhs.
	Distance(lhs, rhs []float64) (float64, error)
}

// Kernel computes a similarity value between two feature vectors.
type Kernel interface {
	Object

	// Compute evaluates the kernel function on lhs and rhs.
	Compute(lhs, rhs []float64) (float64, error)
}

// Machine is a trainable model.
type Machine interface {
	Object

	// Train fits the machine to the given features and labels.
	Train(features [][]float64, labels []float64) error

	// Apply predicts a label for a single feature vector.
	Apply(features []float64) (float64, error)
}

// Evaluator scores predictions against ground truth.
type Evaluator interface {
	Object

	// Evaluate returns a quality measure for predicted versus actual labels.
	Evaluate(predicted, actual []float64) (float64, error)
}
