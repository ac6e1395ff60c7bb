package writing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storybuilder-app/internal/domain/authors"
	"storybuilder-app/internal/domain/plans"
	"storybuilder-app/internal/domain/writing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// WritingIntegrationSuite runs the ordering, slug and cascade behavior
// against a real postgres, since all of it lives in the unique indexes
// and FK constraints.
type WritingIntegrationSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *tcpostgres.PostgresContainer
	db          *gorm.DB

	seq int
}

func (s *WritingIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.pgContainer, err = tcpostgres.Run(s.ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("test_db"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to start postgres container")

	dsn, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get postgres connection string")

	s.db, err = gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(s.T(), err, "Failed to connect to test postgres")

	err = s.db.AutoMigrate(
		&plans.Plan{},
		&authors.Author{},
		&authors.VerificationToken{},
		&writing.Story{},
		&writing.Plot{},
		&writing.PlotPoint{},
		&writing.Scene{},
		&writing.SceneNote{},
		&writing.Character{},
		&writing.World{},
		&writing.Collection{},
	)
	require.NoError(s.T(), err, "Failed to migrate schema")
}

func (s *WritingIntegrationSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

func TestWritingIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode.")
	}
	suite.Run(t, new(WritingIntegrationSuite))
}

/* ---------------- helpers ---------------- */

// newAuthor inserts a fresh author; each test uses its own so the
// suite's tests stay independent.
func (s *WritingIntegrationSuite) newAuthor() authors.Author {
	s.seq++
	author := authors.Author{
		Username: fmt.Sprintf("author-%d", s.seq),
		Email:    fmt.Sprintf("author-%d@example.com", s.seq),
		Role:     "author",
	}
	require.NoError(s.T(), s.db.Create(&author).Error)
	return author
}

func (s *WritingIntegrationSuite) newStory(author authors.Author, title string) writing.Story {
	story := writing.Story{
		AuthorID:    author.ID,
		Title:       title,
		Description: "a story",
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := writing.EnsureStorySlug(tx, &story); err != nil {
			return err
		}
		return tx.Create(&story).Error
	})
	require.NoError(s.T(), err)
	return story
}

func (s *WritingIntegrationSuite) newPlot(story writing.Story) writing.Plot {
	plot := writing.Plot{StoryID: story.ID, Name: "Plot for " + story.Title}
	require.NoError(s.T(), s.db.Create(&plot).Error)
	return plot
}

// addScene appends a scene at the end the way the handler does:
// NextOrder + Create in one transaction.
func (s *WritingIntegrationSuite) addScene(story writing.Story, title string) writing.Scene {
	var scene writing.Scene
	err := s.db.Transaction(func(tx *gorm.DB) error {
		next, err := writing.NextOrder(tx, &writing.Scene{}, "story_id", story.ID)
		if err != nil {
			return err
		}
		scene = writing.Scene{StoryID: story.ID, Title: title, Order: next}
		return tx.Create(&scene).Error
	})
	require.NoError(s.T(), err)
	return scene
}

func (s *WritingIntegrationSuite) addPlotPoint(plot writing.Plot, name string) writing.PlotPoint {
	var point writing.PlotPoint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		next, err := writing.NextOrder(tx, &writing.PlotPoint{}, "plot_id", plot.ID)
		if err != nil {
			return err
		}
		point = writing.PlotPoint{PlotID: plot.ID, Name: name, Order: next}
		return tx.Create(&point).Error
	})
	require.NoError(s.T(), err)
	return point
}

// sceneTitlesInOrder reads back the story's scenes sorted by position.
func (s *WritingIntegrationSuite) sceneTitlesInOrder(storyID uint) ([]string, []int) {
	var scenes []writing.Scene
	require.NoError(s.T(), s.db.
		Where("story_id = ?", storyID).
		Order("sort_order ASC").
		Find(&scenes).Error)

	titles := make([]string, 0, len(scenes))
	orders := make([]int, 0, len(scenes))
	for _, sc := range scenes {
		titles = append(titles, sc.Title)
		orders = append(orders, sc.Order)
	}
	return titles, orders
}

func denseOrders(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

/* ---------------- ordering ---------------- */

func (s *WritingIntegrationSuite) TestNextOrderAppendsDensely() {
	t := s.T()
	story := s.newStory(s.newAuthor(), "Appends")

	s.addScene(story, "one")
	s.addScene(story, "two")
	s.addScene(story, "three")

	titles, orders := s.sceneTitlesInOrder(story.ID)
	require.Equal(t, []string{"one", "two", "three"}, titles)
	require.Equal(t, denseOrders(3), orders)
}

func (s *WritingIntegrationSuite) TestMoveAtBoundariesIsNoOp() {
	t := s.T()
	story := s.newStory(s.newAuthor(), "Boundaries")
	s.addScene(story, "first")
	s.addScene(story, "last")

	err := s.db.Transaction(func(tx *gorm.DB) error {
		moved, err := writing.MoveUp(tx, &writing.Scene{}, "story_id", story.ID, 1)
		require.NoError(t, err)
		require.False(t, moved, "moving the first scene up must be a no-op")

		moved, err = writing.MoveDown(tx, &writing.Scene{}, "story_id", story.ID, 2)
		require.NoError(t, err)
		require.False(t, moved, "moving the last scene down must be a no-op")
		return nil
	})
	require.NoError(t, err)

	titles, orders := s.sceneTitlesInOrder(story.ID)
	require.Equal(t, []string{"first", "last"}, titles)
	require.Equal(t, denseOrders(2), orders)
}

func (s *WritingIntegrationSuite) TestMoveSwapsNeighbors() {
	t := s.T()
	story := s.newStory(s.newAuthor(), "Swaps")
	s.addScene(story, "a")
	s.addScene(story, "b")
	s.addScene(story, "c")

	err := s.db.Transaction(func(tx *gorm.DB) error {
		moved, err := writing.MoveUp(tx, &writing.Scene{}, "story_id", story.ID, 3)
		require.NoError(t, err)
		require.True(t, moved)
		return nil
	})
	require.NoError(t, err)

	titles, orders := s.sceneTitlesInOrder(story.ID)
	require.Equal(t, []string{"a", "c", "b"}, titles)
	require.Equal(t, denseOrders(3), orders)

	// moving it back restores the original sequence
	err = s.db.Transaction(func(tx *gorm.DB) error {
		moved, err := writing.MoveDown(tx, &writing.Scene{}, "story_id", story.ID, 2)
		require.NoError(t, err)
		require.True(t, moved)
		return nil
	})
	require.NoError(t, err)

	titles, orders = s.sceneTitlesInOrder(story.ID)
	require.Equal(t, []string{"a", "b", "c"}, titles)
	require.Equal(t, denseOrders(3), orders)
}

func (s *WritingIntegrationSuite) TestDeleteClosesGapExactly() {
	t := s.T()
	story := s.newStory(s.newAuthor(), "Gaps")
	for _, title := range []string{"s1", "s2", "s3", "s4", "s5"} {
		s.addScene(story, title)
	}

	// delete at position 2: everything above shifts down by one,
	// everything below keeps its place
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&writing.Scene{}, "story_id = ? AND sort_order = ?", story.ID, 2)
		if res.Error != nil {
			return res.Error
		}
		require.EqualValues(t, 1, res.RowsAffected)
		return writing.CloseGap(tx, &writing.Scene{}, "story_id", story.ID, 2)
	})
	require.NoError(t, err)

	titles, orders := s.sceneTitlesInOrder(story.ID)
	require.Equal(t, []string{"s1", "s3", "s4", "s5"}, titles)
	require.Equal(t, denseOrders(4), orders)
}

func (s *WritingIntegrationSuite) TestPlotPointOrderingLifecycle() {
	t := s.T()
	story := s.newStory(s.newAuthor(), "Points")
	plot := s.newPlot(story)

	for _, name := range []string{"setup", "twist", "climax", "resolution"} {
		s.addPlotPoint(plot, name)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		moved, err := writing.MoveUp(tx, &writing.PlotPoint{}, "plot_id", plot.ID, 2)
		require.NoError(t, err)
		require.True(t, moved)

		res := tx.Delete(&writing.PlotPoint{}, "plot_id = ? AND sort_order = ?", plot.ID, 3)
		if res.Error != nil {
			return res.Error
		}
		require.EqualValues(t, 1, res.RowsAffected)
		return writing.CloseGap(tx, &writing.PlotPoint{}, "plot_id", plot.ID, 3)
	})
	require.NoError(t, err)

	var points []writing.PlotPoint
	require.NoError(t, s.db.
		Where("plot_id = ?", plot.ID).
		Order("sort_order ASC").
		Find(&points).Error)

	names := make([]string, 0, len(points))
	orders := make([]int, 0, len(points))
	for _, p := range points {
		names = append(names, p.Name)
		orders = append(orders, p.Order)
	}
	require.Equal(t, []string{"twist", "setup", "resolution"}, names)
	require.Equal(t, denseOrders(3), orders)
}

/* ---------------- slugs ---------------- */

func (s *WritingIntegrationSuite) TestStorySlugUniquePerAuthor() {
	t := s.T()
	author := s.newAuthor()

	first := s.newStory(author, "Winter Tale")
	require.Equal(t, "winter-tale", first.Slug)

	// same title for another author keeps the base slug
	other := s.newStory(s.newAuthor(), "Winter Tale")
	require.Equal(t, "winter-tale", other.Slug)

	// a colliding title within one author's scope gets a -2 slug
	second := s.newStory(author, "Winter Tale!")
	require.Equal(t, "winter-tale-2", second.Slug)

	// an exact duplicate title inside one author surfaces as ErrDuplicatedKey
	dup := writing.Story{AuthorID: author.ID, Title: "Winter Tale"}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := writing.EnsureStorySlug(tx, &dup); err != nil {
			return err
		}
		return tx.Create(&dup).Error
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func (s *WritingIntegrationSuite) TestCharacterSlugUniquePerStory() {
	t := s.T()
	author := s.newAuthor()
	story := s.newStory(author, "Casting")
	sibling := s.newStory(author, "Casting Two")

	mk := func(st writing.Story, first, last string) writing.Character {
		ch := writing.Character{StoryID: st.ID, FirstName: first, LastName: last}
		require.NoError(t, s.db.Transaction(func(tx *gorm.DB) error {
			writing.DeriveFullName(&ch)
			if err := writing.EnsureCharacterSlug(tx, &ch); err != nil {
				return err
			}
			return tx.Create(&ch).Error
		}))
		return ch
	}

	a := mk(story, "John", "Smith")
	b := mk(story, "John", "Smith")
	c := mk(sibling, "John", "Smith")

	require.Equal(t, "john-smith", a.Slug)
	require.Equal(t, "john-smith-2", b.Slug, "same name in one story gets a suffix")
	require.Equal(t, "john-smith", c.Slug, "another story reuses the base slug")
}

/* ---------------- persistence constraints ---------------- */

func (s *WritingIntegrationSuite) TestStoryDeleteCascades() {
	t := s.T()
	story := s.newStory(s.newAuthor(), "Doomed")
	plot := s.newPlot(story)
	point := s.addPlotPoint(plot, "inciting incident")
	scene := s.addScene(story, "opening")

	require.NoError(t, s.db.Model(&scene).Update("plot_point_id", point.ID).Error)
	require.NoError(t, s.db.Create(&writing.SceneNote{SceneID: scene.ID, Note: "tighten this"}).Error)

	ch := writing.Character{StoryID: story.ID, FirstName: "Ada", FullName: "Ada", Slug: "ada"}
	require.NoError(t, s.db.Create(&ch).Error)

	require.NoError(t, s.db.Delete(&writing.Story{}, "id = ?", story.ID).Error)

	checks := []struct {
		name  string
		model interface{}
		where string
		id    uint
	}{
		{"plots", &writing.Plot{}, "story_id = ?", story.ID},
		{"plot points", &writing.PlotPoint{}, "plot_id = ?", plot.ID},
		{"scenes", &writing.Scene{}, "story_id = ?", story.ID},
		{"scene notes", &writing.SceneNote{}, "scene_id = ?", scene.ID},
		{"characters", &writing.Character{}, "story_id = ?", story.ID},
	}
	for _, check := range checks {
		var count int64
		require.NoError(t, s.db.Model(check.model).Where(check.where, check.id).Count(&count).Error)
		require.Zero(t, count, "deleting the story should remove its %s", check.name)
	}
}

func (s *WritingIntegrationSuite) TestPlotPointDeleteClearsSceneReference() {
	t := s.T()
	story := s.newStory(s.newAuthor(), "Unlinked")
	plot := s.newPlot(story)
	point := s.addPlotPoint(plot, "red herring")
	scene := s.addScene(story, "the chase")

	require.NoError(t, s.db.Model(&scene).Update("plot_point_id", point.ID).Error)

	require.NoError(t, s.db.Delete(&writing.PlotPoint{}, "id = ?", point.ID).Error)

	var reloaded writing.Scene
	require.NoError(t, s.db.First(&reloaded, scene.ID).Error)
	require.Nil(t, reloaded.PlotPointID, "the scene survives with the reference cleared")
}
