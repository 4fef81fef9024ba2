package pak

import (
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"treepak/ds"
	"treepak/pak/pblock"
	"treepak/pak/perr"
)

type (
	// Node is one entry of a container as seen by List.
	Node struct {
		Name     string      `json:"name"`
		Kind     pblock.Type `json:"kind"`
		Size     uint32      `json:"size"`
		Offset   uint32      `json:"offset"`
		Children []*Node     `json:"children,omitempty"`
	}
	listLevel struct {
		node    *Node
		pending []pblock.Entry
	}
)

// RootName is the name given to the root node returned by List.
const RootName = "."

func (r *Node) IsDir() bool {
	return r.Kind == pblock.TypeDirectory
}

// List reads the tree stored in the container without writing anything.
// It applies the same validation as Unpack.
func List(containerPath string, opts ...Option) (*Node, error) {
	o := newOptions(opts)

	file, err := os.Open(containerPath)
	if err != nil {
		return nil, errors.Wrapf(perr.IO("List", err), "List error opening container %q", containerPath)
	}
	defer file.Close()

	reader, err := newBlockReader(file)
	if err != nil {
		return nil, errors.Wrap(err, "List error reading container")
	}
	header, err := reader.readHeader()
	if err != nil {
		return nil, errors.Wrap(err, "List error reading header")
	}
	rootEntries, err := reader.readRoot(header.RootOffset)
	if err != nil {
		return nil, errors.Wrap(err, "List error reading root directory")
	}

	root := &Node{
		Name:     RootName,
		Kind:     pblock.TypeDirectory,
		Offset:   header.RootOffset,
		Children: make([]*Node, 0, len(rootEntries)),
	}
	stack := ds.NewStack[listLevel]()
	stack.Push(listLevel{node: root, pending: lo.Reverse(rootEntries)})

	for !stack.IsEmpty() {
		top := stack.Top()
		if len(top.pending) == 0 {
			stack.Pop()
			continue
		}
		entry := top.pending[len(top.pending)-1]
		top.pending = top.pending[:len(top.pending)-1]
		parent := top.node

		blockHeader, frame, err := reader.readBlock(entry.Offset)
		if err != nil {
			return nil, errors.Wrapf(err, "List error reading %q", entry.Name)
		}
		node := &Node{
			Name:   entry.Name,
			Kind:   blockHeader.Type,
			Size:   blockHeader.Size,
			Offset: entry.Offset,
		}
		parent.Children = append(parent.Children, node)

		if node.IsDir() {
			entries, err := pblock.DecodeDirectory(frame)
			if err != nil {
				return nil, errors.Wrapf(err, "List error decoding %q", entry.Name)
			}
			node.Children = make([]*Node, 0, len(entries))
			stack.Push(listLevel{node: node, pending: lo.Reverse(entries)})
		}
	}

	o.logger.Debug("listed", "container", containerPath)
	return root, nil
}

// Paths returns the slash-separated path of every node below r, parents before children.
// Directory paths end with a slash.
func (r *Node) Paths() []string {
	type item struct {
		node *Node
		path string
	}
	paths := make([]string, 0)
	stack := ds.NewStack[item]()
	for i := len(r.Children) - 1; i >= 0; i-- {
		stack.Push(item{node: r.Children[i], path: r.Children[i].Name})
	}
	for !stack.IsEmpty() {
		current := stack.Pop()
		if current.node.IsDir() {
			paths = append(paths, current.path+"/")
		} else {
			paths = append(paths, current.path)
		}
		for i := len(current.node.Children) - 1; i >= 0; i-- {
			child := current.node.Children[i]
			stack.Push(item{node: child, path: path.Join(current.path, child.Name)})
		}
	}
	return paths
}

// ToLinkedHashMap maps file names to sizes and directory names to nested maps, in stored order.
func (r *Node) ToLinkedHashMap() *ds.LinkedHashMap[string, any] {
	type item struct {
		node *Node
		lhm  *ds.LinkedHashMap[string, any]
	}
	root := ds.NewLinkedHashMap[string, any]()
	stack := ds.NewStack[item]()
	stack.Push(item{node: r, lhm: root})
	for !stack.IsEmpty() {
		current := stack.Pop()
		for _, child := range current.node.Children {
			if !child.IsDir() {
				current.lhm.Put(child.Name, child.Size)
				continue
			}
			lhm := ds.NewLinkedHashMap[string, any]()
			current.lhm.Put(child.Name, lhm)
			stack.Push(item{node: child, lhm: lhm})
		}
	}
	return root
}
