package pipeline

// Scaler standardizes a feature vector using parameters fit at training time.
type Scaler interface {
	// Transform returns a scaled copy of the vector. The input is not
	// modified. The vector length must match the scaler's dimensionality.
	Transform(vector []float64) ([]float64, error)
}

// Classifier is a pre-trained binary classifier over scaled feature vectors.
// Class 1 is genuine, class 0 is fake.
type Classifier interface {
	// PredictWithConfidence returns the predicted class and the class
	// probability distribution [p0, p1]. Implementations must be
	// deterministic for a fixed vector.
	PredictWithConfidence(vector []float64) (class int, proba [2]float64, err error)
}
