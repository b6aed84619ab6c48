package region

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/searchcore/engine/pkg/model"
)

func TestCounts_ScoreGrowsWithFrequency(t *testing.T) {
	c := NewCounts(map[model.Region]uint64{1: 90, 2: 10})
	assert.Greater(t, c.Score(1), c.Score(2))
}

func TestCounts_UnknownRegionScoresZero(t *testing.T) {
	c := NewCounts(map[model.Region]uint64{1: 90})
	assert.Equal(t, 0.0, c.Score(99))
}

func TestCounts_NoRegionSentinelScoresZero(t *testing.T) {
	c := NewCounts(map[model.Region]uint64{1: 90})
	assert.Equal(t, 0.0, c.Score(model.NoRegion))
}

func TestScoreRegion_ExactMatchAddsBonus(t *testing.T) {
	c := NewCounts(map[model.Region]uint64{1: 50, 2: 50})
	q := model.Region(1)
	withMatch := ScoreRegion(1, &q, c)
	withoutMatch := ScoreRegion(2, &q, c)
	assert.Greater(t, withMatch, withoutMatch+49)
}

func TestScoreRegion_NilQueryRegionNoBonus(t *testing.T) {
	c := NewCounts(map[model.Region]uint64{1: 50})
	score := ScoreRegion(1, nil, c)
	assert.Equal(t, c.Score(1), score)
}

func TestScoreRegion_NilCountsScoresJustBonus(t *testing.T) {
	q := model.Region(1)
	score := ScoreRegion(1, &q, nil)
	assert.Equal(t, exactMatchBonus, score)
}
