// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/models"
)

// CategoryService maintains the category forest: ordered siblings, no
// self-parenting and no cycles.
type CategoryService struct {
	repo Repository
	log  *logger.Logger
}

// NewCategoryService returns a CategoryService.
func NewCategoryService(repo Repository, log *logger.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log.With("service", "category")}
}

// List returns every live category in display order with ChildIDs set.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	all, err := s.repo.Categories().List(ctx)
	if err != nil {
		return nil, apperr.Store("list categories", err)
	}
	sortCategories(all)
	idx := childIndex(all)
	for i := range all {
		all[i].ChildIDs = categoryIDs(idx[all[i].ID])
	}
	return all, nil
}

// Get returns one live category with ChildIDs set.
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.find(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	children, err := s.repo.Categories().ListChildren(ctx, id)
	if err != nil {
		return nil, apperr.Store("list child categories", err)
	}
	c.ChildIDs = categoryIDs(children)
	return c, nil
}

// GetRoots returns the live categories whose parent_id is unset. Unlike
// GetTree it does not promote orphans (children of a deleted parent) to
// roots; use GetTree when every live category must be reachable.
func (s *CategoryService) GetRoots(ctx context.Context) ([]models.Category, error) {
	roots, err := s.repo.Categories().ListRoots(ctx)
	if err != nil {
		return nil, apperr.Store("list root categories", err)
	}
	sortCategories(roots)
	return roots, nil
}

// GetWithChildren returns the category with its immediate live children.
func (s *CategoryService) GetWithChildren(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.find(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	children, err := s.repo.Categories().ListChildren(ctx, id)
	if err != nil {
		return nil, apperr.Store("list child categories", err)
	}
	sortCategories(children)
	for i := range children {
		children[i].Depth = 1
	}
	c.Children = children
	c.ChildIDs = categoryIDs(children)
	return c, nil
}

// GetFullHierarchy returns the category with its whole descendant subtree.
// The subtree is assembled level by level from a parent index built over a
// single bulk fetch.
func (s *CategoryService) GetFullHierarchy(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	root, err := s.find(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.Categories().List(ctx)
	if err != nil {
		return nil, apperr.Store("list categories", err)
	}
	idx := childIndex(all)

	seen := map[uuid.UUID]bool{root.ID: true}
	level := []*models.Category{root}
	for depth := 1; len(level) > 0; depth++ {
		var next []*models.Category
		for _, parent := range level {
			for _, child := range idx[parent.ID] {
				if seen[child.ID] {
					continue
				}
				seen[child.ID] = true
				child.Depth = depth
				parent.Children = append(parent.Children, child)
			}
			parent.ChildIDs = categoryIDs(parent.Children)
			for i := range parent.Children {
				next = append(next, &parent.Children[i])
			}
		}
		level = next
	}
	return root, nil
}

// GetTree returns the whole forest. Categories whose parent is no longer
// live are presented as roots so that no live category disappears.
func (s *CategoryService) GetTree(ctx context.Context) ([]models.Category, error) {
	all, err := s.repo.Categories().List(ctx)
	if err != nil {
		return nil, apperr.Store("list categories", err)
	}
	idx := childIndex(all)
	tree := attachChildren(idx[uuid.Nil], idx, 0)
	s.log.Debug("category tree built", "categories", len(all), "roots", len(tree))
	return tree, nil
}

// HasChildren reports whether any live category has id as parent.
func (s *CategoryService) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := s.repo.Categories().CountChildren(ctx, id)
	if err != nil {
		return false, apperr.Store("count child categories", err)
	}
	return n > 0, nil
}

// Create adds a category. A given parent must be live.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if msg := validateCategory(&in); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	var created *models.Category
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if in.ParentID != nil {
			parent, err := tx.Categories().FindByID(ctx, *in.ParentID)
			if err != nil {
				return apperr.Store("find parent category", err)
			}
			if parent == nil {
				return apperr.NotFound("parent not found: %s", *in.ParentID)
			}
		}
		c, err := tx.Categories().Create(ctx, &models.Category{
			Name:         in.Name,
			Description:  in.Description,
			ColorHex:     in.ColorHex,
			DisplayOrder: in.DisplayOrder,
			ParentID:     in.ParentID,
		})
		if err != nil {
			return apperr.Store("create category", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("category created", "id", created.ID, "name", created.Name)
	return created, nil
}

// Update rewrites a category. Changing the parent re-validates the forest:
// the new parent must be live, must not be the category itself and must
// not be one of its descendants. A nil parent detaches the category into a
// root.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	if msg := validateCategory(&in); msg != "" {
		return nil, apperr.Validation("%s", msg)
	}

	var updated *models.Category
	err := s.repo.InTx(ctx, func(tx Repository) error {
		current, err := s.find(ctx, tx, id)
		if err != nil {
			return err
		}

		if in.ParentID != nil && !sameParent(current.ParentID, in.ParentID) {
			newParent := *in.ParentID
			parent, err := tx.Categories().FindByID(ctx, newParent)
			if err != nil {
				return apperr.Store("find parent category", err)
			}
			if parent == nil {
				return apperr.NotFound("parent not found: %s", newParent)
			}
			if newParent == id {
				return apperr.Circular("circular reference: a category cannot be its own parent")
			}
			cycle, err := s.isAncestor(ctx, tx, id, newParent)
			if err != nil {
				return err
			}
			if cycle {
				return apperr.Circular("circular reference: %s is a descendant of %s", newParent, id)
			}
		}

		current.Name = in.Name
		current.Description = in.Description
		current.ColorHex = in.ColorHex
		current.DisplayOrder = in.DisplayOrder
		current.ParentID = in.ParentID

		u, err := tx.Categories().Update(ctx, current)
		if err != nil {
			return apperr.Store("update category", err)
		}
		if u == nil {
			return apperr.NotFound("category not found: %s", id)
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("category updated", "id", id)
	return updated, nil
}

// isAncestor walks the parent chain upward from start one hop at a time and
// reports whether id appears on it. The walk ends at a root, at a missing
// parent, or on a node it has already visited.
func (s *CategoryService) isAncestor(ctx context.Context, repo Repository, id, start uuid.UUID) (bool, error) {
	visited := make(map[uuid.UUID]bool)
	cur := start
	for {
		if cur == id {
			return true, nil
		}
		if visited[cur] {
			s.log.Warn("category parent chain loops", "start", start, "at", cur)
			return false, nil
		}
		visited[cur] = true

		c, err := repo.Categories().FindByID(ctx, cur)
		if err != nil {
			return false, apperr.Store("walk category ancestors", err)
		}
		if c == nil || c.ParentID == nil {
			return false, nil
		}
		cur = *c.ParentID
	}
}

// Delete soft-deletes a category. It is refused while live children or
// live tweet links reference the category.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.InTx(ctx, func(tx Repository) error {
		if _, err := s.find(ctx, tx, id); err != nil {
			return err
		}
		children, err := tx.Categories().CountChildren(ctx, id)
		if err != nil {
			return apperr.Store("count child categories", err)
		}
		links, err := tx.TweetCategories().CountByCategory(ctx, id)
		if err != nil {
			return apperr.Store("count tweet categories", err)
		}
		if children > 0 || links > 0 {
			return apperr.InUse("cannot delete: referenced by children or tweet-category links")
		}
		if err := tx.Categories().SoftDelete(ctx, id); err != nil {
			return apperr.Store("delete category", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("category deleted", "id", id)
	return nil
}

// UpdateDisplayOrders applies every id→order pair in one transaction. The
// first id that is not a live category aborts the whole batch.
func (s *CategoryService) UpdateDisplayOrders(ctx context.Context, orders map[uuid.UUID]int) error {
	ids := sortedKeys(orders)
	for _, id := range ids {
		if orders[id] < 0 {
			return apperr.Validation("display order for %s cannot be negative", id)
		}
	}

	err := s.repo.InTx(ctx, func(tx Repository) error {
		for _, id := range ids {
			ok, err := tx.Categories().UpdateDisplayOrder(ctx, id, orders[id])
			if err != nil {
				return apperr.Store("update category display order", err)
			}
			if !ok {
				return apperr.NotFound("category not found: %s", id)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("category display orders updated", "count", len(ids))
	return nil
}

func (s *CategoryService) find(ctx context.Context, repo Repository, id uuid.UUID) (*models.Category, error) {
	c, err := repo.Categories().FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Store("find category", err)
	}
	if c == nil {
		return nil, apperr.NotFound("category not found: %s", id)
	}
	return c, nil
}

// childIndex groups live categories by parent id, each group in sibling
// order. Categories whose parent is absent from all are filed under
// uuid.Nil together with the real roots.
func childIndex(all []models.Category) map[uuid.UUID][]models.Category {
	live := make(map[uuid.UUID]bool, len(all))
	for _, c := range all {
		live[c.ID] = true
	}
	idx := make(map[uuid.UUID][]models.Category)
	for _, c := range all {
		key := uuid.Nil
		if c.ParentID != nil && live[*c.ParentID] {
			key = *c.ParentID
		}
		idx[key] = append(idx[key], c)
	}
	for _, group := range idx {
		sortCategories(group)
	}
	return idx
}

// attachChildren copies nodes and nests their descendants from idx.
func attachChildren(nodes []models.Category, idx map[uuid.UUID][]models.Category, depth int) []models.Category {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]models.Category, len(nodes))
	for i, c := range nodes {
		c.Depth = depth
		c.ChildIDs = categoryIDs(idx[c.ID])
		c.Children = attachChildren(idx[c.ID], idx, depth+1)
		out[i] = c
	}
	return out
}

func sortCategories(cs []models.Category) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].DisplayOrder != cs[j].DisplayOrder {
			return cs[i].DisplayOrder < cs[j].DisplayOrder
		}
		if cs[i].Name != cs[j].Name {
			return cs[i].Name < cs[j].Name
		}
		return cs[i].ID.String() < cs[j].ID.String()
	})
}

func categoryIDs(cs []models.Category) []uuid.UUID {
	if len(cs) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

// sameParent compares two optional parent ids.
func sameParent(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func sortedKeys(m map[uuid.UUID]int) []uuid.UUID {
	keys := make([]uuid.UUID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
