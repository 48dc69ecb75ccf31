package content_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rynvlabs/cms/internal/database"
	"github.com/rynvlabs/cms/internal/models"
	"github.com/rynvlabs/cms/pkg/content"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func newProjects(db *gorm.DB) *content.Collection[models.Project, *models.Project] {
	return content.New[models.Project, *models.Project](db, content.Meta{
		VisibilityColumn: "is_published",
		SearchColumns:    []string{"title", "description"},
		NaturalKeyColumn: "slug",
	})
}

func newAcademy(db *gorm.DB) *content.Collection[models.AcademyProject, *models.AcademyProject] {
	return content.New[models.AcademyProject, *models.AcademyProject](db, content.Meta{
		VisibilityColumn: "is_published",
		OrderBy:          []content.Order{{Column: "year", Desc: true}, {Column: "sort_order"}},
		SearchColumns:    []string{"title", "description"},
		NaturalKeyColumn: "slug",
	})
}

func makeProject(slug string, published bool) *models.Project {
	return &models.Project{
		Slug:        slug,
		Title:       "Title " + slug,
		Description: "Description " + slug,
		Category:    "IOT",
		IsPublished: published,
	}
}

func projectSlugs(recs []models.Project) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Slug)
	}
	return out
}

func TestCreateAppendsToEndOfOrder(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	for _, slug := range []string{"first", "second", "third"} {
		require.NoError(t, coll.Create(ctx, makeProject(slug, true)))
	}

	recs, err := coll.ListAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"first", "second", "third"}, projectSlugs(recs))
	assert.Equal(t, 1, recs[0].SortOrder)
	assert.Equal(t, 2, recs[1].SortOrder)
	assert.Equal(t, 3, recs[2].SortOrder)
}

func TestCreateKeepsExplicitSortOrder(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	require.NoError(t, coll.Create(ctx, makeProject("first", true)))

	rec := makeProject("pinned", true)
	rec.SortOrder = 42
	require.NoError(t, coll.Create(ctx, rec))
	assert.Equal(t, 42, rec.SortOrder)

	// The next append lands past the explicit maximum.
	next := makeProject("second", true)
	require.NoError(t, coll.Create(ctx, next))
	assert.Equal(t, 43, next.SortOrder)
}

func TestCreateDuplicateSlugConflicts(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	require.NoError(t, coll.Create(ctx, makeProject("taken", true)))
	err := coll.Create(ctx, makeProject("taken", false))
	assert.ErrorIs(t, err, content.ErrConflict)
}

func TestReorderRewritesDisplayOrder(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	recs := make([]*models.Project, 3)
	for i, slug := range []string{"a", "b", "c"} {
		recs[i] = makeProject(slug, true)
		require.NoError(t, coll.Create(ctx, recs[i]))
	}

	err := coll.Reorder(ctx, []content.Placement{
		{ID: recs[2].ID, SortOrder: 1},
		{ID: recs[0].ID, SortOrder: 2},
		{ID: recs[1].ID, SortOrder: 3},
	})
	require.NoError(t, err)

	out, err := coll.ListAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, projectSlugs(out))
}

func TestReorderSubsetLeavesOthersUntouched(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	recs := make([]*models.Project, 3)
	for i, slug := range []string{"a", "b", "c"} {
		recs[i] = makeProject(slug, true)
		require.NoError(t, coll.Create(ctx, recs[i]))
	}

	// Swap only a and c; b keeps its order of 2.
	err := coll.Reorder(ctx, []content.Placement{
		{ID: recs[0].ID, SortOrder: 3},
		{ID: recs[2].ID, SortOrder: 1},
	})
	require.NoError(t, err)

	b, err := coll.Get(ctx, recs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, b.SortOrder)

	out, err := coll.ListAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, projectSlugs(out))
}

func TestReorderUnknownIDRollsBack(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	recs := make([]*models.Project, 2)
	for i, slug := range []string{"a", "b"} {
		recs[i] = makeProject(slug, true)
		require.NoError(t, coll.Create(ctx, recs[i]))
	}

	err := coll.Reorder(ctx, []content.Placement{
		{ID: recs[0].ID, SortOrder: 2},
		{ID: 9999, SortOrder: 1},
	})
	assert.ErrorIs(t, err, content.ErrNotFound)

	// The valid leg of the batch must not have been applied.
	a, err := coll.Get(ctx, recs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, a.SortOrder)
}

func TestReorderIgnoresRecordsOfOtherTypes(t *testing.T) {
	db := newTestDB(t)
	projects := newProjects(db)
	academy := newAcademy(db)
	ctx := context.Background()

	require.NoError(t, academy.Create(ctx, &models.AcademyProject{
		Slug: "thesis", Title: "Thesis", Description: "d", Year: 2025, IsPublished: true,
	}))
	require.NoError(t, projects.Create(ctx, makeProject("a", true)))

	// An academy id is foreign to the projects table even if a row with that
	// id happens to exist there; here it does not, so the batch fails whole.
	var ap models.AcademyProject
	require.NoError(t, db.Where("slug = ?", "thesis").First(&ap).Error)

	err := projects.Reorder(ctx, []content.Placement{{ID: ap.ID + 1000, SortOrder: 1}})
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestReorderIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	recs := make([]*models.Project, 2)
	for i, slug := range []string{"a", "b"} {
		recs[i] = makeProject(slug, true)
		require.NoError(t, coll.Create(ctx, recs[i]))
	}

	payload := []content.Placement{
		{ID: recs[1].ID, SortOrder: 1},
		{ID: recs[0].ID, SortOrder: 2},
	}
	require.NoError(t, coll.Reorder(ctx, payload))
	require.NoError(t, coll.Reorder(ctx, payload))

	out, err := coll.ListAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, projectSlugs(out))
}

func TestReorderEmptyPayloadInvalid(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)

	err := coll.Reorder(context.Background(), nil)
	assert.ErrorIs(t, err, content.ErrInvalid)
}

func TestListHidesUnpublished(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	require.NoError(t, coll.Create(ctx, makeProject("visible", true)))
	hidden := makeProject("hidden", false)
	require.NoError(t, coll.Create(ctx, hidden))
	require.NoError(t, coll.Create(ctx, makeProject("tail", true)))

	page, err := coll.List(ctx, content.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, []string{"visible", "tail"}, projectSlugs(page.Data))

	// Publishing reveals the record at its existing position, between the two.
	_, err = coll.SetVisibility(ctx, hidden.ID, nil)
	require.NoError(t, err)

	page, err = coll.List(ctx, content.Query{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, []string{"visible", "hidden", "tail"}, projectSlugs(page.Data))
}

func TestListPaginates(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, coll.Create(ctx, makeProject(fmt.Sprintf("p%d", i), true)))
	}

	page, err := coll.List(ctx, content.Query{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, []string{"p2", "p3"}, projectSlugs(page.Data))
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	iot := makeProject("sensor-grid", true)
	iot.Title = "Sensor Grid"
	require.NoError(t, coll.Create(ctx, iot))

	sw := makeProject("billing-portal", true)
	sw.Title = "Billing Portal"
	sw.Category = "SOFTWARE"
	require.NoError(t, coll.Create(ctx, sw))

	page, err := coll.List(ctx, content.Query{Filters: []content.Filter{
		content.Facet{Column: "category", Value: "SOFTWARE"},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"billing-portal"}, projectSlugs(page.Data))

	page, err = coll.List(ctx, content.Query{Filters: []content.Filter{
		content.Search{Term: "Sensor"},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"sensor-grid"}, projectSlugs(page.Data))
}

func TestGetByKeyIgnoresPublishGate(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	require.NoError(t, coll.Create(ctx, makeProject("draft", false)))

	rec, err := coll.GetByKey(ctx, "draft")
	require.NoError(t, err)
	assert.Equal(t, "draft", rec.Slug)

	_, err = coll.GetByKey(ctx, "missing")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestSetVisibilityExplicitAndToggle(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	rec := makeProject("a", false)
	require.NoError(t, coll.Create(ctx, rec))

	out, err := coll.SetVisibility(ctx, rec.ID, nil)
	require.NoError(t, err)
	assert.True(t, out.IsPublished)

	f := false
	out, err = coll.SetVisibility(ctx, rec.ID, &f)
	require.NoError(t, err)
	assert.False(t, out.IsPublished)

	// Explicit set to the current value is a no-op, not a toggle.
	out, err = coll.SetVisibility(ctx, rec.ID, &f)
	require.NoError(t, err)
	assert.False(t, out.IsPublished)

	_, err = coll.SetVisibility(ctx, 9999, nil)
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestDeleteLeavesGapInOrder(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	recs := make([]*models.Project, 3)
	for i, slug := range []string{"a", "b", "c"} {
		recs[i] = makeProject(slug, true)
		require.NoError(t, coll.Create(ctx, recs[i]))
	}

	require.NoError(t, coll.Delete(ctx, recs[1].ID))

	out, err := coll.ListAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, projectSlugs(out))
	assert.Equal(t, 1, out[0].SortOrder)
	assert.Equal(t, 3, out[1].SortOrder)

	err = coll.Delete(ctx, recs[1].ID)
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestAcademyOrdersByYearThenSortOrder(t *testing.T) {
	db := newTestDB(t)
	coll := newAcademy(db)
	ctx := context.Background()

	mk := func(slug string, year int) *models.AcademyProject {
		return &models.AcademyProject{
			Slug: slug, Title: slug, Description: "d", Year: year, IsPublished: true,
		}
	}
	require.NoError(t, coll.Create(ctx, mk("old-a", 2023)))
	require.NoError(t, coll.Create(ctx, mk("new-a", 2025)))
	require.NoError(t, coll.Create(ctx, mk("old-b", 2023)))

	page, err := coll.List(ctx, content.Query{})
	require.NoError(t, err)
	slugs := make([]string, 0, len(page.Data))
	for _, r := range page.Data {
		slugs = append(slugs, r.Slug)
	}
	assert.Equal(t, []string{"new-a", "old-a", "old-b"}, slugs)

	years, err := coll.DistinctInts(ctx, "year", true)
	require.NoError(t, err)
	assert.Equal(t, []int{2025, 2023}, years)
}

func TestDistinctIntsHonorsPublishGate(t *testing.T) {
	db := newTestDB(t)
	coll := newAcademy(db)
	ctx := context.Background()

	require.NoError(t, coll.Create(ctx, &models.AcademyProject{
		Slug: "pub", Title: "t", Description: "d", Year: 2024, IsPublished: true,
	}))
	require.NoError(t, coll.Create(ctx, &models.AcademyProject{
		Slug: "draft", Title: "t", Description: "d", Year: 2022, IsPublished: false,
	}))

	years, err := coll.DistinctInts(ctx, "year", true)
	require.NoError(t, err)
	assert.Equal(t, []int{2024}, years)

	years, err = coll.DistinctInts(ctx, "year", false)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2022}, years)
}

func TestEqualSortOrdersResolveByInsertion(t *testing.T) {
	db := newTestDB(t)
	coll := newProjects(db)
	ctx := context.Background()

	for _, slug := range []string{"a", "b"} {
		rec := makeProject(slug, true)
		rec.SortOrder = 7
		require.NoError(t, coll.Create(ctx, rec))
	}

	out, err := coll.ListAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, projectSlugs(out))
}
