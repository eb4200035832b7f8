package tree

/*
Node is a node of the tree, representing one axis-aligned rectangular
region of the feature space.
*/
type Node struct {
	// Left and Right are the subtrees owned by the node. They are both
	// set for internal nodes and both nil for leaves.
	Left, Right *Node
	// The feature column index and threshold splitting the node's region:
	// samples whose feature value is less than or equal to the threshold
	// belong to the left subtree, the rest to the right one. Only
	// meaningful on internal nodes.
	Feature   int
	Threshold float64
	// The impurity of the node's region under the training criterion.
	Impurity float64
	// The number of training samples in the node's region.
	Samples int
	// The prediction for samples whose routing from the root reaches this
	// node. It is always set, so cutting a tree at any depth still yields
	// a usable predictor.
	Prediction *Prediction
}

/*
Leaf returns whether the node is a leaf of its tree.
*/
func (n *Node) Leaf() bool {
	return n.Left == nil && n.Right == nil
}
