package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarkbrain/internal/apperr"
	"bookmarkbrain/internal/models"
)

// chain builds A <- B <- C (C's parent is B, B's parent is A).
func chain(db *memDB) (a, b, c models.Category) {
	a = db.addCategory("A", nil)
	b = db.addCategory("B", &a.ID)
	c = db.addCategory("C", &b.ID)
	return a, b, c
}

func TestCategoryUpdate_RejectsCycles(t *testing.T) {
	ctx := context.Background()

	t.Run("ancestor under descendant", func(t *testing.T) {
		svc, db := newService(NewCategoryService)
		a, _, c := chain(db)

		_, err := svc.Update(ctx, a.ID, CategoryInput{Name: "A", ParentID: &c.ID})
		require.Error(t, err)
		assert.Equal(t, apperr.KindCircularReference, apperr.KindOf(err))
		assert.Nil(t, db.categories[a.ID].ParentID, "A must stay a root")
	})

	t.Run("own parent", func(t *testing.T) {
		svc, db := newService(NewCategoryService)
		a, _, _ := chain(db)

		_, err := svc.Update(ctx, a.ID, CategoryInput{Name: "A", ParentID: &a.ID})
		assert.True(t, apperr.Is(err, apperr.KindCircularReference))
	})

	t.Run("move leaf to root", func(t *testing.T) {
		svc, db := newService(NewCategoryService)
		_, _, c := chain(db)

		got, err := svc.Update(ctx, c.ID, CategoryInput{Name: "C"})
		require.NoError(t, err)
		assert.Nil(t, got.ParentID)
		assert.NotNil(t, got.UpdatedAt)
	})

	t.Run("move sideways", func(t *testing.T) {
		svc, db := newService(NewCategoryService)
		a, b, c := chain(db)
		d := db.addCategory("D", &a.ID)

		got, err := svc.Update(ctx, c.ID, CategoryInput{Name: "C", ParentID: &d.ID})
		require.NoError(t, err)
		assert.Equal(t, d.ID, *got.ParentID)
		assert.NotEqual(t, b.ID, *got.ParentID)
	})

	t.Run("missing parent", func(t *testing.T) {
		svc, db := newService(NewCategoryService)
		a, _, _ := chain(db)
		ghost := uuid.New()

		_, err := svc.Update(ctx, a.ID, CategoryInput{Name: "A", ParentID: &ghost})
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("unchanged parent skips the walk", func(t *testing.T) {
		svc, db := newService(NewCategoryService)
		a, b, _ := chain(db)

		got, err := svc.Update(ctx, b.ID, CategoryInput{Name: "B2", ParentID: &a.ID})
		require.NoError(t, err)
		assert.Equal(t, "B2", got.Name)
	})
}

func TestCategoryUpdate_ToleratesCorruptChain(t *testing.T) {
	svc, db := newService(NewCategoryService)
	x := db.addCategory("X", nil)
	y := db.addCategory("Y", &x.ID)
	// Corrupt the stored forest: X -> Y -> X.
	xc := db.categories[x.ID]
	xc.ParentID = &y.ID
	db.categories[x.ID] = xc
	z := db.addCategory("Z", nil)

	_, err := svc.Update(context.Background(), z.ID, CategoryInput{Name: "Z", ParentID: &x.ID})
	require.NoError(t, err)
}

func TestCategoryCreate(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(NewCategoryService)
	root := db.addCategory("Root", nil)

	got, err := svc.Create(ctx, CategoryInput{Name: "  Child ", ColorHex: "#abc", ParentID: &root.ID})
	require.NoError(t, err)
	assert.Equal(t, "Child", got.Name)
	assert.Equal(t, root.ID, *got.ParentID)
	assert.Nil(t, got.UpdatedAt)

	ghost := uuid.New()
	_, err = svc.Create(ctx, CategoryInput{Name: "Orphan", ParentID: &ghost})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.Create(ctx, CategoryInput{Name: "Bad", ColorHex: "blue"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCategoryGetTree(t *testing.T) {
	svc, db := newService(NewCategoryService)
	prog := db.addCategory("Programming", nil)
	js := db.addCategory("JavaScript", &prog.ID)
	cs := db.addCategory("C#", &prog.ID)
	dbc := db.addCategory("Database", nil)
	sql := db.addCategory("SQL Server", &dbc.ID)
	deep := db.addCategory("T-SQL", &sql.ID)

	// A child whose parent was deleted still shows up, as a root.
	gone := db.addCategory("Gone", nil)
	stray := db.addCategory("Stray", &gone.ID)
	g := db.categories[gone.ID]
	g.IsDeleted = true
	db.categories[gone.ID] = g

	tree, err := svc.GetTree(context.Background())
	require.NoError(t, err)

	seen := map[uuid.UUID]int{}
	var walk func([]models.Category, int)
	walk = func(nodes []models.Category, depth int) {
		for _, n := range nodes {
			seen[n.ID]++
			assert.Equal(t, depth, n.Depth)
			walk(n.Children, depth+1)
		}
	}
	walk(tree, 0)

	for _, id := range []uuid.UUID{prog.ID, js.ID, cs.ID, dbc.ID, sql.ID, deep.ID, stray.ID} {
		assert.Equal(t, 1, seen[id], "category %s must appear exactly once", id)
	}
	assert.Zero(t, seen[gone.ID])

	names := make([]string, len(tree))
	for i, n := range tree {
		names[i] = n.Name
	}
	assert.Equal(t, []string{"Database", "Programming", "Stray"}, names)
	assert.Equal(t, []uuid.UUID{cs.ID, js.ID}, tree[1].ChildIDs)
}

func TestCategoryTree_AfterDetach(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(NewCategoryService)
	a, b, c := chain(db)

	_, err := svc.Update(ctx, a.ID, CategoryInput{Name: "A", ParentID: &c.ID})
	require.True(t, apperr.Is(err, apperr.KindCircularReference))

	_, err = svc.Update(ctx, b.ID, CategoryInput{Name: "B"})
	require.NoError(t, err)

	tree, err := svc.GetTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, a.ID, tree[0].ID)
	assert.Empty(t, tree[0].Children)
	assert.Equal(t, b.ID, tree[1].ID)
	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, c.ID, tree[1].Children[0].ID)
	assert.Equal(t, 1, tree[1].Children[0].Depth)
}

func TestCategoryGetRoots_SkipsOrphans(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(NewCategoryService)
	a, b, _ := chain(db)
	g := db.categories[a.ID]
	g.IsDeleted = true
	db.categories[a.ID] = g
	d := db.addCategory("D", nil)

	roots, err := svc.GetRoots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, d.ID, roots[0].ID)

	tree, err := svc.GetTree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, b.ID, tree[0].ID)
	assert.Equal(t, d.ID, tree[1].ID)
}

func TestCategoryGetFullHierarchy(t *testing.T) {
	svc, db := newService(NewCategoryService)
	a, b, c := chain(db)
	d := db.addCategory("D", &a.ID)

	got, err := svc.GetFullHierarchy(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, got.Children, 2)
	assert.Equal(t, b.ID, got.Children[0].ID)
	assert.Equal(t, d.ID, got.Children[1].ID)
	require.Len(t, got.Children[0].Children, 1)
	assert.Equal(t, c.ID, got.Children[0].Children[0].ID)
	assert.Equal(t, 2, got.Children[0].Children[0].Depth)

	_, err = svc.GetFullHierarchy(context.Background(), uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCategoryGetWithChildren(t *testing.T) {
	svc, db := newService(NewCategoryService)
	a, b, _ := chain(db)

	got, err := svc.GetWithChildren(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, got.Children, 1)
	assert.Equal(t, b.ID, got.Children[0].ID)
	assert.Empty(t, got.Children[0].Children, "only one level is loaded")

	has, err := svc.HasChildren(context.Background(), b.ID)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestCategoryDelete(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(NewCategoryService)
	a, b, c := chain(db)

	err := svc.Delete(ctx, b.ID)
	assert.True(t, apperr.Is(err, apperr.KindInUse))

	tw := db.addTweet("hello")
	link := models.TweetCategory{ID: uuid.New(), TweetID: tw.ID, CategoryID: c.ID}
	db.tweetCategories[link.ID] = link
	err = svc.Delete(ctx, c.ID)
	assert.True(t, apperr.Is(err, apperr.KindInUse))

	link.IsDeleted = true
	db.tweetCategories[link.ID] = link
	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.True(t, db.categories[c.ID].IsDeleted)
	assert.False(t, db.categories[a.ID].IsDeleted)

	err = svc.Delete(ctx, c.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCategoryUpdateDisplayOrders(t *testing.T) {
	ctx := context.Background()
	svc, db := newService(NewCategoryService)
	a, b, _ := chain(db)

	require.NoError(t, svc.UpdateDisplayOrders(ctx, map[uuid.UUID]int{a.ID: 3, b.ID: 1}))
	assert.Equal(t, 3, db.categories[a.ID].DisplayOrder)
	assert.Equal(t, 1, db.categories[b.ID].DisplayOrder)

	err := svc.UpdateDisplayOrders(ctx, map[uuid.UUID]int{a.ID: 9, uuid.New(): 2})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, 3, db.categories[a.ID].DisplayOrder, "batch must roll back")

	err = svc.UpdateDisplayOrders(ctx, map[uuid.UUID]int{a.ID: -1})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCategoryList_StoreFailure(t *testing.T) {
	svc, db := newService(NewCategoryService)
	db.fail["categories.list"] = errBoom

	_, err := svc.List(context.Background())
	assert.Equal(t, apperr.KindStore, apperr.KindOf(err))
	assert.ErrorIs(t, err, errBoom)
}
