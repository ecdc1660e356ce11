package preview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/pokestory-guide/internal/model"
)

func TestEmbeddedCatalogValidates(t *testing.T) {
	c, err := Catalog()
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	require.Len(t, c.Regions, len(model.RegionIDs))
	assert.Len(t, c.Trainers, 5)
	assert.NotEmpty(t, c.Teams)
	assert.NotEmpty(t, c.Party)
	assert.NotEmpty(t, c.Counters)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	tests := map[string]string{
		"top level": "regions: []\nbogus: 1\n",
		"region":    "regions:\n  - {id: kanto, name: Kanto, colour: red}\n",
		"trainer":   "trainers:\n  - {id: kanto-brock-rb, region_id: kanto, badge: 1}\n",
		"party":     "party:\n  - {team_id: t, name: Onix, lvl: 14}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode catalog")
		})
	}
}

func TestParseSnakeCaseFields(t *testing.T) {
	c, err := Parse([]byte(`
regions:
  - {id: kanto, name: Kanto, order_index: 0, cover_images: [a.png]}
trainers:
  - id: kanto-brock-rb
    region_id: kanto
    display_name: Brock
    role: gym
    badge_number: 1
    sprite_urls: [b.png]
`))
	require.NoError(t, err)
	require.Len(t, c.Trainers, 1)
	assert.Equal(t, []string{"a.png"}, c.Regions[0].CoverImages)
	require.NotNil(t, c.Trainers[0].BadgeNumber)
	assert.Equal(t, 1, *c.Trainers[0].BadgeNumber)
	assert.Equal(t, []string{"b.png"}, c.Trainers[0].SpriteURLs)
	assert.NoError(t, c.Validate())
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
}

func TestStoreServesRegionsInOrder(t *testing.T) {
	s, err := Store()
	require.NoError(t, err)

	regions, err := s.Regions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, len(model.RegionIDs))
	for i, r := range regions {
		assert.Equal(t, model.RegionIDs[i], r.ID)
	}

	teams, err := s.TeamsByTrainer(context.Background(), "kanto-brock-rb")
	require.NoError(t, err)
	require.NotEmpty(t, teams)
	assert.Equal(t, "kanto-brock-rb:rb-first", teams[0].ID)
}
