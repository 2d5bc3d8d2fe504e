package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mverdier/greenback/internal/common"
)

// Node is one decision node in a tree. Internal nodes route on
// vector[Feature] <= Threshold; leaves (Feature == -1) carry the class
// probability distribution seen at training time.
type Node struct {
	Value     [2]float64 `json:"value"`
	Threshold float64    `json:"threshold"`
	Feature   int        `json:"feature"`
	Left      int        `json:"left"`
	Right     int        `json:"right"`
}

// Tree is a single decision tree stored as a flat node array rooted at 0.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is a pre-trained random-forest classifier. Class probabilities are
// the mean of the per-tree leaf distributions; the predicted class is the
// argmax, class 0 winning ties. Immutable after load.
type Forest struct {
	trees []Tree
}

type forestFile struct {
	Type  string `json:"type"`
	Trees []Tree `json:"trees"`
}

// LoadForest reads a random-forest artifact from disk.
func LoadForest(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrArtifactMissing, path, err)
	}

	var file forestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrArtifactInvalid, path, err)
	}
	if file.Type != "random_forest" {
		return nil, fmt.Errorf("%w: %s: unexpected classifier type %q", common.ErrArtifactInvalid, path, file.Type)
	}

	return NewForest(file.Trees)
}

// NewForest builds a forest from decision trees, rejecting malformed ones.
func NewForest(trees []Tree) (*Forest, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("%w: forest has no trees", common.ErrArtifactInvalid)
	}
	for ti, tree := range trees {
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("%w: tree %d has no nodes", common.ErrArtifactInvalid, ti)
		}
		for ni, node := range tree.Nodes {
			if node.Feature < 0 {
				continue
			}
			if node.Left < 0 || node.Left >= len(tree.Nodes) ||
				node.Right < 0 || node.Right >= len(tree.Nodes) {
				return nil, fmt.Errorf("%w: tree %d node %d has out-of-range children",
					common.ErrArtifactInvalid, ti, ni)
			}
			if node.Left <= ni || node.Right <= ni {
				return nil, fmt.Errorf("%w: tree %d node %d has non-forward children",
					common.ErrArtifactInvalid, ti, ni)
			}
		}
	}
	return &Forest{trees: trees}, nil
}

// NumTrees returns the size of the ensemble.
func (f *Forest) NumTrees() int {
	return len(f.trees)
}

// PredictWithConfidence classifies one scaled feature vector.
func (f *Forest) PredictWithConfidence(vector []float64) (int, [2]float64, error) {
	var sum [2]float64
	for ti := range f.trees {
		leaf, err := f.trees[ti].walk(vector)
		if err != nil {
			return 0, [2]float64{}, fmt.Errorf("tree %d: %w", ti, err)
		}
		sum[0] += leaf[0]
		sum[1] += leaf[1]
	}

	n := float64(len(f.trees))
	proba := [2]float64{sum[0] / n, sum[1] / n}

	class := 0
	if proba[1] > proba[0] {
		class = 1
	}
	return class, proba, nil
}

// walk follows the tree from the root to a leaf and returns the leaf's class
// distribution.
func (t *Tree) walk(vector []float64) ([2]float64, error) {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.Feature < 0 {
			return node.Value, nil
		}
		if node.Feature >= len(vector) {
			return [2]float64{}, fmt.Errorf("node %d splits on feature %d, vector has %d", idx, node.Feature, len(vector))
		}
		if vector[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}
