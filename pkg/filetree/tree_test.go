package filetree

import "testing"

func dir(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{ID: name, Name: name, Path: name, Children: children}
}

func file(name string) *Node {
	return &Node{ID: name, Name: name, Path: name}
}

func TestRenderTree_Flat(t *testing.T) {
	root := dir("A", file("b.txt"), file("c.txt"))

	got := RenderTree(root)
	want := "├── b.txt\n└── c.txt\n"
	if got != want {
		t.Errorf("RenderTree() = %q, want %q", got, want)
	}
}

func TestRenderTree_Nested(t *testing.T) {
	root := dir("root",
		dir("cmd",
			file("main.go"),
			dir("view", file("page.go")),
		),
		dir("empty"),
		dir("pkg", file("lib.go")),
	)

	want := "" +
		"├── cmd\n" +
		"│   ├── main.go\n" +
		"│   └── view\n" +
		"│       └── page.go\n" +
		"├── empty\n" +
		"└── pkg\n" +
		"    └── lib.go\n"

	if got := RenderTree(root); got != want {
		t.Errorf("RenderTree() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderTree_Empty(t *testing.T) {
	if got := RenderTree(dir("root")); got != "" {
		t.Errorf("expected empty rendering, got %q", got)
	}
	if got := RenderTree(nil); got != "" {
		t.Errorf("expected empty rendering for nil root, got %q", got)
	}
}

func TestFlattenAndCount(t *testing.T) {
	root := dir("root", dir("a", file("a1"), file("a2")), file("b"))

	flat := Flatten(root)
	want := []string{"root", "a", "a1", "a2", "b"}
	if len(flat) != len(want) {
		t.Fatalf("Expected %d nodes, got %d", len(want), len(flat))
	}
	for i, n := range flat {
		if n.Name != want[i] {
			t.Errorf("Flatten()[%d] = %s, want %s", i, n.Name, want[i])
		}
	}

	dirs, files := Count(root)
	if dirs != 1 || files != 3 {
		t.Errorf("Count() = (%d, %d), want (1, 3)", dirs, files)
	}

	if leaves := Leaves(root); len(leaves) != 3 {
		t.Errorf("Expected 3 leaves, got %d", len(leaves))
	}
	if Find(root, "a2") == nil {
		t.Error("Expected to find a2")
	}
	if Find(root, "missing") != nil {
		t.Error("Expected nil for missing path")
	}
}
