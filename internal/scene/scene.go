// Package scene holds the named node graph that game objects hang their
// visuals and colliders on. Nodes are addressed by stable handles so other
// packages can keep weak references without owning the node.
package scene

import (
	"image/color"

	"shmup/internal/mathutil"
)

// Handle identifies a node. The zero handle is never allocated.
type Handle uint32

// None is the zero handle
const None Handle = 0

// Node is a rectangle in the scene. Offset is relative to the parent; a
// root's offset is its world position.
type Node struct {
	Handle   Handle
	Name     string
	Offset   mathutil.Vec2
	Size     mathutil.Vec2
	Color    color.RGBA
	Tint     *color.RGBA // overrides Color while set
	Hidden   bool
	Parent   Handle
	Children []Handle
}

// DrawColor returns the tint when set, else the base color
func (n *Node) DrawColor() color.RGBA {
	if n.Tint != nil {
		return *n.Tint
	}
	return n.Color
}

// Graph owns all nodes and allocates handles
type Graph struct {
	nodes map[Handle]*Node
	roots []Handle
	next  Handle
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[Handle]*Node),
		next:  1,
	}
}

// NewNode allocates a node under parent. Pass None for a root.
func (g *Graph) NewNode(parent Handle, name string, offset, size mathutil.Vec2, c color.RGBA) *Node {
	n := &Node{
		Handle: g.next,
		Name:   name,
		Offset: offset,
		Size:   size,
		Color:  c,
		Parent: parent,
	}
	g.next++
	g.nodes[n.Handle] = n

	if p, ok := g.nodes[parent]; ok {
		p.Children = append(p.Children, n.Handle)
	} else {
		n.Parent = None
		g.roots = append(g.roots, n.Handle)
	}
	return n
}

// Node returns the node for h, or nil once it has been removed
func (g *Graph) Node(h Handle) *Node {
	return g.nodes[h]
}

// Roots returns root handles in creation order
func (g *Graph) Roots() []Handle {
	return g.roots
}

// Len returns the number of live nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Find searches the subtree under root (excluding root) for a node named
// name, breadth first.
func (g *Graph) Find(root Handle, name string) (Handle, bool) {
	r, ok := g.nodes[root]
	if !ok {
		return None, false
	}
	queue := append([]Handle(nil), r.Children...)
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		n, ok := g.nodes[h]
		if !ok {
			continue
		}
		if n.Name == name {
			return h, true
		}
		queue = append(queue, n.Children...)
	}
	return None, false
}

// Lookup returns a name resolver scoped to root's subtree
func (g *Graph) Lookup(root Handle) func(name string) (Handle, bool) {
	return func(name string) (Handle, bool) {
		return g.Find(root, name)
	}
}

// WorldPos returns the node position with all parent offsets applied
func (g *Graph) WorldPos(h Handle) mathutil.Vec2 {
	var pos mathutil.Vec2
	for n := g.nodes[h]; n != nil; n = g.nodes[n.Parent] {
		pos = pos.Add(n.Offset)
		if n.Parent == None {
			break
		}
	}
	return pos
}

// Remove deletes h and its whole subtree
func (g *Graph) Remove(h Handle) {
	n, ok := g.nodes[h]
	if !ok {
		return
	}
	for _, c := range append([]Handle(nil), n.Children...) {
		g.Remove(c)
	}
	delete(g.nodes, h)

	if p, ok := g.nodes[n.Parent]; ok {
		p.Children = removeHandle(p.Children, h)
	} else {
		g.roots = removeHandle(g.roots, h)
	}
}

func removeHandle(list []Handle, h Handle) []Handle {
	for i, x := range list {
		if x == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
