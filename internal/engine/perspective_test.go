package engine

import (
	"testing"

	"veritas/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type perspectiveFixture struct {
	registry *Registry
	public   uuid.UUID
	neutral  uuid.UUID
	partisan uuid.UUID
	unknown  uuid.UUID
}

func newPerspectiveFixture() perspectiveFixture {
	f := perspectiveFixture{
		public:   uuid.New(),
		neutral:  uuid.New(),
		partisan: uuid.New(),
		unknown:  uuid.New(),
	}
	f.registry = NewRegistry(map[uuid.UUID]string{
		f.public:   models.CategoryPublic,
		f.neutral:  models.CategoryNeutral,
		f.partisan: models.CategoryPolitical,
	})
	return f
}

func articleFrom(sourceID uuid.UUID) models.Article {
	return models.Article{ID: uuid.New(), SourceID: &sourceID}
}

func TestPerspectiveDistribution_SumsToHundred(t *testing.T) {
	f := newPerspectiveFixture()

	dist, err := PerspectiveDistribution([]models.Article{
		articleFrom(f.public),
		articleFrom(f.neutral),
		articleFrom(f.partisan),
	}, f.registry)
	require.NoError(t, err)

	assert.Equal(t, 100, dist.PublicPct+dist.NeutralPct+dist.PoliticalPct)
	// 33.33 each; the single leftover point goes to the first category in
	// the fixed order.
	assert.Equal(t, 34, dist.PublicPct)
	assert.Equal(t, 33, dist.NeutralPct)
	assert.Equal(t, 33, dist.PoliticalPct)
}

func TestPerspectiveDistribution_LargestRemainderRounding(t *testing.T) {
	f := newPerspectiveFixture()

	// 1 public, 2 neutral, 4 political out of 7: exact shares are 14.28,
	// 28.57 and 57.14. Floors assign 14+28+57=99; neutral holds the largest
	// remainder and takes the leftover point.
	articles := []models.Article{
		articleFrom(f.public),
		articleFrom(f.neutral), articleFrom(f.neutral),
		articleFrom(f.partisan), articleFrom(f.partisan), articleFrom(f.partisan), articleFrom(f.partisan),
	}

	dist, err := PerspectiveDistribution(articles, f.registry)
	require.NoError(t, err)

	assert.Equal(t, 14, dist.PublicPct)
	assert.Equal(t, 29, dist.NeutralPct)
	assert.Equal(t, 57, dist.PoliticalPct)
	assert.Equal(t, 100, dist.PublicPct+dist.NeutralPct+dist.PoliticalPct)
}

func TestPerspectiveDistribution_ExcludesUncategorized(t *testing.T) {
	f := newPerspectiveFixture()

	orphan := models.Article{ID: uuid.New()}
	dist, err := PerspectiveDistribution([]models.Article{
		articleFrom(f.public),
		articleFrom(f.unknown),
		orphan,
	}, f.registry)
	require.NoError(t, err)

	// Only the categorized article counts.
	assert.Equal(t, 100, dist.PublicPct)
	assert.Equal(t, 0, dist.NeutralPct)
	assert.Equal(t, 0, dist.PoliticalPct)
	assert.Contains(t, dist.Summary, "1 categorized report")
}

func TestPerspectiveDistribution_NothingCategorizedIsInvalid(t *testing.T) {
	f := newPerspectiveFixture()

	_, err := PerspectiveDistribution([]models.Article{
		articleFrom(f.unknown),
		{ID: uuid.New()},
	}, f.registry)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = PerspectiveDistribution(nil, f.registry)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPerspectiveDistribution_Summaries(t *testing.T) {
	f := newPerspectiveFixture()

	t.Run("entirely one category", func(t *testing.T) {
		dist, err := PerspectiveDistribution([]models.Article{
			articleFrom(f.neutral), articleFrom(f.neutral),
		}, f.registry)
		require.NoError(t, err)
		assert.Contains(t, dist.Summary, "entirely neutral")
		assert.Contains(t, dist.Summary, "2 categorized reports")
	})

	t.Run("primarily one category", func(t *testing.T) {
		dist, err := PerspectiveDistribution([]models.Article{
			articleFrom(f.partisan), articleFrom(f.partisan), articleFrom(f.partisan),
			articleFrom(f.public), articleFrom(f.neutral),
		}, f.registry)
		require.NoError(t, err)
		assert.Contains(t, dist.Summary, "primarily political")
	})

	t.Run("all three represented", func(t *testing.T) {
		dist, err := PerspectiveDistribution([]models.Article{
			articleFrom(f.public), articleFrom(f.public),
			articleFrom(f.neutral), articleFrom(f.neutral),
			articleFrom(f.partisan),
		}, f.registry)
		require.NoError(t, err)
		assert.Contains(t, dist.Summary, "multiple perspectives")
	})
}

func TestLoadRegistry_SkipsUnclassifiedSources(t *testing.T) {
	db := setupTestDB(t)

	createTestSource(t, db, "Reuters", models.CategoryNeutral)
	createTestSource(t, db, "Unlabeled Wire", "")

	registry, err := LoadRegistry(db)
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len())
}
