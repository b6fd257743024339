package modeling

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/oddscout/internal/config"
	"github.com/yourusername/oddscout/internal/models"
)

type fakeArtifactStore struct {
	model      Model
	modTime    time.Time
	loadCalls  int
	storeCalls int
}

func (f *fakeArtifactStore) Load(sport models.Sport) (Model, time.Time, error) {
	f.loadCalls++
	if f.model == nil {
		return nil, time.Time{}, models.ErrNotFound
	}
	return f.model, f.modTime, nil
}

func (f *fakeArtifactStore) Store(sport models.Sport, model Model) error {
	f.storeCalls++
	f.model = model
	return nil
}

type fakeHistorySource struct {
	results []*models.HistoricalResult
	calls   int
}

func (f *fakeHistorySource) GetHistoricalResults(ctx context.Context, sport models.Sport, league string, since time.Time) ([]*models.HistoricalResult, error) {
	f.calls++
	return f.results, nil
}

func newTestSelector(artifacts ArtifactStore, history HistorySource) *Selector {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg := &config.ModelingConfig{
		MinHistoricalGames: 100,
		ModelCacheDays:     7,
		HistoryMonths:      24,
	}
	return NewSelector(artifacts, history, cfg, log)
}

func TestSelectorFreshArtifactSkipsRetrain(t *testing.T) {
	fitted := NewPoissonModel()
	require.NoError(t, fitted.Fit(balancedHistory()))

	artifacts := &fakeArtifactStore{model: fitted, modTime: time.Now().Add(-time.Hour)}
	history := &fakeHistorySource{results: balancedHistory()}
	s := newTestSelector(artifacts, history)

	model, err := s.GetModel(context.Background(), models.SportSoccer, "")
	require.NoError(t, err)
	assert.Equal(t, KindPoisson, model.Kind())
	assert.Equal(t, 0, history.calls)
	assert.Equal(t, 0, artifacts.storeCalls)
}

func TestSelectorStaleArtifactRetrains(t *testing.T) {
	fitted := NewPoissonModel()
	require.NoError(t, fitted.Fit(balancedHistory()))

	// Artifact aged past the seven-day window
	artifacts := &fakeArtifactStore{model: fitted, modTime: time.Now().Add(-8 * 24 * time.Hour)}
	history := &fakeHistorySource{results: balancedHistory()}
	s := newTestSelector(artifacts, history)

	_, err := s.GetModel(context.Background(), models.SportSoccer, "")
	require.NoError(t, err)
	assert.Equal(t, 1, history.calls)
	assert.Equal(t, 1, artifacts.storeCalls)
}

func TestSelectorMissingArtifactRetrains(t *testing.T) {
	artifacts := &fakeArtifactStore{}
	history := &fakeHistorySource{results: balancedHistory()}
	s := newTestSelector(artifacts, history)

	model, err := s.GetModel(context.Background(), models.SportSoccer, "")
	require.NoError(t, err)
	assert.Equal(t, 1, history.calls)
	assert.Equal(t, 1, artifacts.storeCalls)

	_, ok := model.Predict("arsenal", "chelsea")
	assert.True(t, ok)
}

func TestSelectorMemoryCacheServesRepeatCalls(t *testing.T) {
	artifacts := &fakeArtifactStore{}
	history := &fakeHistorySource{results: balancedHistory()}
	s := newTestSelector(artifacts, history)

	_, err := s.GetModel(context.Background(), models.SportSoccer, "")
	require.NoError(t, err)
	_, err = s.GetModel(context.Background(), models.SportSoccer, "")
	require.NoError(t, err)

	assert.Equal(t, 1, history.calls)
	assert.Equal(t, 1, artifacts.loadCalls)
}

func TestSelectorEmptyHistoryYieldsUnfittedModel(t *testing.T) {
	artifacts := &fakeArtifactStore{}
	history := &fakeHistorySource{}
	s := newTestSelector(artifacts, history)

	model, err := s.GetModel(context.Background(), models.SportSoccer, "")
	require.NoError(t, err)

	// An unfitted model declines every prediction instead of guessing
	_, ok := model.Predict("arsenal", "chelsea")
	assert.False(t, ok)
}
