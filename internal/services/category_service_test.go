package services

import (
	"testing"

	"avidoBack/internal/models"
)

func intp(v int) *int { return &v }

func TestBuildCategoryTree(t *testing.T) {
	categories := []models.Category{
		{ID: 1, Name: "Category 1"},
		{ID: 2, Name: "Category 2", ParentID: intp(1)},
		{ID: 3, Name: "Category 3", ParentID: intp(1)},
		{ID: 4, Name: "Category 4", ParentID: intp(2)},
		{ID: 5, Name: "Category 5"},
	}

	tree := BuildCategoryTree(categories)
	if len(tree) != 2 {
		t.Fatalf("expected 2 top-level categories, got %d", len(tree))
	}

	first := tree[0]
	if first.Name != "Category 1" {
		t.Fatalf("unexpected root: %s", first.Name)
	}
	if len(first.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(first.Children))
	}
	if len(first.Children[0].Children) != 1 {
		t.Fatalf("expected 1 grandchild, got %d", len(first.Children[0].Children))
	}
	if first.Children[0].Children[0].Name != "Category 4" {
		t.Fatalf("unexpected grandchild: %s", first.Children[0].Children[0].Name)
	}

	if len(tree[1].Children) != 0 {
		t.Fatalf("expected leaf root to have no children, got %d", len(tree[1].Children))
	}
}

func TestBuildCategoryTreeTerminatesOnCycle(t *testing.T) {
	// испорченная цепочка parent_id: 2 -> 3 -> 2
	categories := []models.Category{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "A", ParentID: intp(1)},
		{ID: 3, Name: "B", ParentID: intp(2)},
	}
	categories[1].ParentID = intp(3)
	categories[2].ParentID = intp(2)
	// ни 2, ни 3 не достижимы из корня, но их взаимная ссылка не должна
	// зациклить обход
	tree := BuildCategoryTree(categories)
	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}

	// категория, ссылающаяся сама на себя
	categories = []models.Category{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "Self", ParentID: intp(2)},
	}
	tree = BuildCategoryTree(categories)
	if len(tree) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree))
	}
	if len(tree[0].Children) != 0 {
		t.Fatalf("expected no children, got %d", len(tree[0].Children))
	}
}

func TestBuildCategoryTreeDepthBound(t *testing.T) {
	var categories []models.Category
	categories = append(categories, models.Category{ID: 1, Name: "Root"})
	for i := 2; i <= 100; i++ {
		categories = append(categories, models.Category{ID: i, ParentID: intp(i - 1)})
	}

	tree := BuildCategoryTree(categories)
	depth := 0
	node := tree[0]
	for len(node.Children) > 0 {
		node = node.Children[0]
		depth++
	}
	if depth != maxTreeDepth {
		t.Fatalf("expected traversal to stop at depth %d, got %d", maxTreeDepth, depth)
	}
}
