/*
Package json serializes grown trees as JSON documents: a header with
the task, class dictionary and feature names, followed by the nodes of
the tree in preorder as an index-linked array with the root at index 0.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tushushu/smartcore/dataset"
	"github.com/tushushu/smartcore/tree"
)

type jsonTree struct {
	Task     string      `json:"task"`
	Classes  []string    `json:"classes,omitempty"`
	Features []string    `json:"features,omitempty"`
	Nodes    []*jsonNode `json:"nodes"`
}

type jsonNode struct {
	Feature       int       `json:"feature"`
	Threshold     float64   `json:"threshold"`
	Impurity      float64   `json:"impurity"`
	Samples       int       `json:"samples"`
	Left          int       `json:"left"`
	Right         int       `json:"right"`
	Value         float64   `json:"value"`
	Probabilities []float64 `json:"probabilities,omitempty"`
	Weight        int       `json:"weight"`
}

/*
Marshal takes a tree and returns its JSON serialization as a slice of
bytes, or an error if the tree is empty or a node carries no
prediction.
*/
func Marshal(t *tree.Tree) ([]byte, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("marshaling tree: empty tree")
	}
	jt := &jsonTree{Task: t.Task.String(), Classes: t.Classes, Features: t.Features}
	indexes := make(map[*tree.Node]int)
	err := t.Traverse(false, func(n *tree.Node) error {
		indexes[n] = len(indexes)
		return nil
	})
	if err != nil {
		return nil, err
	}
	err = t.Traverse(false, func(n *tree.Node) error {
		if n.Prediction == nil {
			return fmt.Errorf("marshaling tree: node %d has no prediction", indexes[n])
		}
		jn := &jsonNode{
			Feature:       n.Feature,
			Threshold:     n.Threshold,
			Impurity:      n.Impurity,
			Samples:       n.Samples,
			Left:          -1,
			Right:         -1,
			Value:         n.Prediction.Value(),
			Probabilities: n.Prediction.Probabilities(),
			Weight:        n.Prediction.Weight(),
		}
		if !n.Leaf() {
			jn.Left = indexes[n.Left]
			jn.Right = indexes[n.Right]
		}
		jt.Nodes = append(jt.Nodes, jn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(jt)
}

/*
Unmarshal takes a slice of bytes with a JSON-serialized tree and
returns the tree decoded from it, or an error if the document is
malformed or its node links are inconsistent.
*/
func Unmarshal(data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	if err := json.Unmarshal(data, jt); err != nil {
		return nil, fmt.Errorf("unmarshaling tree: %v", err)
	}
	task, err := dataset.ParseTask(jt.Task)
	if err != nil {
		return nil, fmt.Errorf("unmarshaling tree: %v", err)
	}
	if len(jt.Nodes) == 0 {
		return nil, fmt.Errorf("unmarshaling tree: no nodes")
	}
	nodes := make([]*tree.Node, len(jt.Nodes))
	for i, jn := range jt.Nodes {
		nodes[i] = &tree.Node{
			Feature:    jn.Feature,
			Threshold:  jn.Threshold,
			Impurity:   jn.Impurity,
			Samples:    jn.Samples,
			Prediction: tree.NewPrediction(jn.Value, jn.Probabilities, jn.Weight),
		}
	}
	for i, jn := range jt.Nodes {
		if jn.Left == -1 && jn.Right == -1 {
			continue
		}
		if jn.Left <= i || jn.Left >= len(nodes) || jn.Right <= i || jn.Right >= len(nodes) {
			return nil, fmt.Errorf("unmarshaling tree: node %d links to invalid nodes %d and %d", i, jn.Left, jn.Right)
		}
		nodes[i].Left = nodes[jn.Left]
		nodes[i].Right = nodes[jn.Right]
	}
	t := tree.New(nodes[0], task, jt.Classes)
	t.Features = jt.Features
	return t, nil
}

/*
Write takes a tree and an io.Writer and writes the JSON serialization
of the tree onto the writer, returning an error if the tree cannot be
serialized or written.
*/
func Write(t *tree.Tree, w io.Writer) error {
	data, err := Marshal(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

/*
Read takes an io.Reader with a JSON-serialized tree and returns the
tree decoded from it, or an error if it cannot be read or decoded.
*/
func Read(r io.Reader) (*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading tree: %v", err)
	}
	return Unmarshal(data)
}
