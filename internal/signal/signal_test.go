package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/searchcore/engine/pkg/model"
)

func TestBM25_ZeroInputsYieldZero(t *testing.T) {
	assert.Equal(t, 0.0, BM25(0, 5, 100, 10, 10))
	assert.Equal(t, 0.0, BM25(3, 0, 100, 10, 10))
	assert.Equal(t, 0.0, BM25(3, 5, 0, 10, 10))
	assert.Equal(t, 0.0, BM25(3, 5, 100, 10, 0))
}

func TestBM25_RarerTermScoresHigher(t *testing.T) {
	common := BM25(2, 80, 100, 10, 10)
	rare := BM25(2, 2, 100, 10, 10)
	assert.Greater(t, rare, common)
}

func TestRankScore_MonotonicDecreasing(t *testing.T) {
	assert.InDelta(t, 1.0, rankScore(0), 0.0001)
	assert.Greater(t, rankScore(0), rankScore(1))
	assert.Greater(t, rankScore(1), rankScore(10))
}

func TestLinkDensityScore_ThresholdAtHalf(t *testing.T) {
	assert.Equal(t, 0.0, linkDensityScore(0.51))
	assert.InDelta(t, 0.5, linkDensityScore(0.5), 0.0001)
	assert.InDelta(t, 1.0, linkDensityScore(0.0), 0.0001)
}

func TestFetchTimeScore_CappedAtOne(t *testing.T) {
	assert.LessOrEqual(t, fetchTimeScore(0), 1.0)
	assert.Greater(t, fetchTimeScore(0), fetchTimeScore(500))
}

func TestUpdateTimestampScore_OlderIsLower(t *testing.T) {
	now := int64(1000000)
	recent := updateTimestampScore(now, now-3600*2)
	old := updateTimestampScore(now, now-3600*24*30)
	assert.Greater(t, recent, old)
}

func TestDefaultSignalCoefficients_CoefficientRoundTrips(t *testing.T) {
	coef := DefaultSignalCoefficients()
	assert.InDelta(t, coef.Bm25Title, coef.Coefficient(model.SignalBm25Title), 0.0001)
	assert.InDelta(t, coef.HostCentrality, coef.Coefficient(model.SignalHostCentrality), 0.0001)
}

func TestWithOverrides_OpticWinsOverLinearModel(t *testing.T) {
	base := DefaultSignalCoefficients()
	linear := map[model.Signal]float64{model.SignalHostCentrality: 10}
	optic := map[model.Signal]float64{model.SignalHostCentrality: 20}
	out := base.WithOverrides(linear, optic)
	assert.InDelta(t, 20.0, out.Coefficient(model.SignalHostCentrality), 0.0001)
}

func TestWithOverrides_LinearModelAppliesWhenNoOpticOverride(t *testing.T) {
	base := DefaultSignalCoefficients()
	linear := map[model.Signal]float64{model.SignalRegion: 99}
	out := base.WithOverrides(linear, nil)
	assert.InDelta(t, 99.0, out.Coefficient(model.SignalRegion), 0.0001)
}

func TestAggregator_Score_CombinesColumnSignals(t *testing.T) {
	coef := SignalCoefficients{HostCentrality: 10, IsHomepage: 5}
	agg := NewAggregator(coef)
	ds := DocSignals{
		Columns: model.Columns{
			HostCentrality: uint64(0.5 * float64(1<<24)),
			IsHomepage:     true,
		},
		NowUnix: 1000,
	}
	score := agg.Score(ds)
	assert.InDelta(t, 10*0.5+5, score, 0.01)
	assert.Equal(t, 0, agg.Warnings())
}

func TestAggregator_Score_NgramDampeningAppliesAfterPositiveHit(t *testing.T) {
	coef := SignalCoefficients{
		Bm25TitleTrigrams: 3.0,
		Bm25TitleBigrams:  2.0,
		Bm25Title:         4.0,
	}
	agg := NewAggregator(coef)
	ds := DocSignals{
		BM25Terms: map[model.TextField]TermStats{
			model.FieldTitleTrigrams: {TermFreq: 1, DocFreq: 1, FieldLen: 5},
			model.FieldTitleBigrams:  {TermFreq: 1, DocFreq: 1, FieldLen: 5},
			model.FieldTitle:         {TermFreq: 1, DocFreq: 1, FieldLen: 5},
		},
		FieldStats: map[model.TextField]FieldStats{
			model.FieldTitleTrigrams: {NumDocs: 100, AvgFieldLen: 5},
			model.FieldTitleBigrams:  {NumDocs: 100, AvgFieldLen: 5},
			model.FieldTitle:         {NumDocs: 100, AvgFieldLen: 5},
		},
	}
	score := agg.Score(ds)

	undamped := NewAggregator(coef)
	undampedDS := DocSignals{
		BM25Terms: map[model.TextField]TermStats{
			model.FieldTitleTrigrams: {TermFreq: 1, DocFreq: 1, FieldLen: 5},
		},
		FieldStats: map[model.TextField]FieldStats{
			model.FieldTitleTrigrams: {NumDocs: 100, AvgFieldLen: 5},
		},
	}
	trigramOnly := undamped.Score(undampedDS)

	assert.Greater(t, score, trigramOnly)
	assert.Less(t, score, trigramOnly*3)
}

func TestAggregator_Score_ClampsNaNWithWarning(t *testing.T) {
	coef := SignalCoefficients{UpdateTimestamp: 1.0}
	agg := NewAggregator(coef)
	ds := DocSignals{
		Columns: model.Columns{LastUpdated: 1000},
		NowUnix: 1000,
	}
	score := agg.Score(ds)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 1, agg.Warnings())
}

func TestAggregator_Score_ExternalSignalsDefaultToZeroCoefficient(t *testing.T) {
	coef := DefaultSignalCoefficients()
	agg := NewAggregator(coef)
	ds := DocSignals{
		ExternalScores: model.ExternalScores{LambdaMART: 42},
		NowUnix:        1000,
		Columns:        model.Columns{LastUpdated: 1000 - 3600},
	}
	score := agg.Score(ds)
	assert.InDelta(t, 0.0, score-scoreWithoutLambda(t, coef, ds), 0.0001)
}

func scoreWithoutLambda(t *testing.T, coef SignalCoefficients, ds DocSignals) float64 {
	t.Helper()
	without := ds
	without.ExternalScores.LambdaMART = 0
	return NewAggregator(coef).Score(without)
}
