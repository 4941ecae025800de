package services

import (
	"context"

	"avidoBack/internal/models"
	"avidoBack/internal/repositories"
	"avidoBack/utils"
)

// maxTreeDepth bounds tree materialization; self-referencing parent ids are
// never validated at write time, so a corrupted chain must not hang a
// listing request.
const maxTreeDepth = 32

type CategoryService struct {
	CategoryRepo *repositories.CategoryRepository
}

func (s *CategoryService) CreateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if category.Slug == "" {
		category.Slug = utils.Slugify(category.Name)
	}
	return s.CategoryRepo.CreateCategory(ctx, category)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	return s.CategoryRepo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if category.Slug == "" {
		category.Slug = utils.Slugify(category.Name)
	}
	return s.CategoryRepo.UpdateCategory(ctx, category)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.CategoryRepo.DeleteCategory(ctx, id)
}

// GetCategoryTree materializes the tree for every top-level category.
func (s *CategoryService) GetCategoryTree(ctx context.Context) ([]models.CategoryNode, error) {
	categories, err := s.CategoryRepo.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	return BuildCategoryTree(categories), nil
}

// BuildCategoryTree assembles the nested structure from the flat category
// list. Traversal is iterative with a visited set and a depth bound, so a
// cyclic parent chain terminates instead of recursing forever.
func BuildCategoryTree(categories []models.Category) []models.CategoryNode {
	children := make(map[int][]models.Category)
	var roots []models.Category
	for _, category := range categories {
		if category.ParentID == nil {
			roots = append(roots, category)
			continue
		}
		children[*category.ParentID] = append(children[*category.ParentID], category)
	}

	nodes := make([]models.CategoryNode, 0, len(roots))
	for _, root := range roots {
		visited := map[int]struct{}{root.ID: {}}
		nodes = append(nodes, buildSubtree(root, children, visited, 0))
	}
	return nodes
}

func buildSubtree(category models.Category, children map[int][]models.Category, visited map[int]struct{}, depth int) models.CategoryNode {
	node := models.CategoryNode{
		ID:       category.ID,
		Name:     category.Name,
		Children: []models.CategoryNode{},
	}
	if depth >= maxTreeDepth {
		return node
	}
	for _, child := range children[category.ID] {
		if _, seen := visited[child.ID]; seen {
			continue
		}
		visited[child.ID] = struct{}{}
		node.Children = append(node.Children, buildSubtree(child, children, visited, depth+1))
	}
	return node
}
