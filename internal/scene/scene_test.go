package scene

import (
	"image/color"
	"testing"

	"shmup/internal/mathutil"
)

func buildShip(g *Graph) *Node {
	root := g.NewNode(None, "ship", mathutil.V(10, 20), mathutil.Vec2{}, color.RGBA{})
	body := g.NewNode(root.Handle, "body", mathutil.V(0, 1), mathutil.V(2, 2), color.RGBA{R: 255, A: 255})
	g.NewNode(body.Handle, "cockpit", mathutil.V(0, -1), mathutil.V(1, 1), color.RGBA{B: 255, A: 255})
	g.NewNode(root.Handle, "wing", mathutil.V(3, 0), mathutil.V(2, 1), color.RGBA{G: 255, A: 255})
	return root
}

func TestFindSearchesSubtree(t *testing.T) {
	g := NewGraph()
	root := buildShip(g)

	h, ok := g.Find(root.Handle, "cockpit")
	if !ok {
		t.Fatal("expected to find nested node")
	}
	if g.Node(h).Name != "cockpit" {
		t.Errorf("found wrong node %q", g.Node(h).Name)
	}
	if _, ok := g.Find(root.Handle, "ship"); ok {
		t.Error("root itself should not match")
	}
	if _, ok := g.Find(root.Handle, "missing"); ok {
		t.Error("unexpected match for missing name")
	}
}

func TestLookupIsScopedToRoot(t *testing.T) {
	g := NewGraph()
	a := buildShip(g)
	b := buildShip(g)

	ha, _ := g.Lookup(a.Handle)("wing")
	hb, _ := g.Lookup(b.Handle)("wing")
	if ha == hb {
		t.Error("lookups on different roots returned the same handle")
	}
}

func TestWorldPos(t *testing.T) {
	g := NewGraph()
	root := buildShip(g)
	h, _ := g.Find(root.Handle, "cockpit")

	if got := g.WorldPos(h); got != mathutil.V(10, 20) {
		t.Errorf("WorldPos(cockpit) = %v, want (10,20)", got)
	}
	root.Offset = mathutil.V(0, 0)
	if got := g.WorldPos(h); got != mathutil.V(0, 0) {
		t.Errorf("WorldPos after move = %v, want (0,0)", got)
	}
}

func TestRemoveDropsSubtree(t *testing.T) {
	g := NewGraph()
	root := buildShip(g)
	other := g.NewNode(None, "bullet", mathutil.Vec2{}, mathutil.V(1, 1), color.RGBA{})

	g.Remove(root.Handle)
	if g.Len() != 1 {
		t.Errorf("expected 1 node left, got %d", g.Len())
	}
	if g.Node(root.Handle) != nil {
		t.Error("root still present after Remove")
	}
	if len(g.Roots()) != 1 || g.Roots()[0] != other.Handle {
		t.Errorf("unexpected roots %v", g.Roots())
	}
}

func TestDrawColorPrefersTint(t *testing.T) {
	n := &Node{Color: color.RGBA{R: 1}}
	if n.DrawColor() != n.Color {
		t.Error("expected base color without tint")
	}
	red := color.RGBA{R: 255, A: 255}
	n.Tint = &red
	if n.DrawColor() != red {
		t.Error("expected tint color")
	}
}
