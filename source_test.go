package tilego

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tilego/model"
	"github.com/hupe1980/tilego/property"
	"github.com/hupe1980/tilego/sourcediff"
	"github.com/hupe1980/tilego/testutil"
	"github.com/hupe1980/tilego/tilestore"
)

func sourceFeature(id int64, name string) *model.Feature {
	return &model.Feature{
		ID:       model.IntID(id),
		Geometry: orb.Point{float64(id), float64(id)},
		Properties: property.Document{
			"name": property.String(name),
		},
	}
}

func TestSource_SetDataReplacesEverything(t *testing.T) {
	ctx := context.Background()
	s := NewSource()

	s.SetData(ctx, sourcediff.CollectionValue([]*model.Feature{
		sourceFeature(1, "a"),
		sourceFeature(2, "b"),
	}))

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Updateable())

	f, ok := s.Get(model.IntID(1))
	require.True(t, ok)
	assert.Equal(t, "a", f.Properties["name"].StringValue())

	// A queued diff does not survive a replacement.
	require.NoError(t, s.UpdateData(ctx, &sourcediff.SourceDiff{
		Remove: []model.FeatureID{model.IntID(1)},
	}))
	require.True(t, s.Pending())

	s.SetData(ctx, sourcediff.CollectionValue([]*model.Feature{sourceFeature(3, "c")}))
	assert.False(t, s.Pending())
	assert.Equal(t, 1, s.Len())
}

func TestSource_UpdateCoalescesUntilCommit(t *testing.T) {
	ctx := context.Background()
	s := NewSource()
	s.SetData(ctx, sourcediff.CollectionValue([]*model.Feature{
		sourceFeature(1, "a"),
		sourceFeature(2, "b"),
	}))

	require.NoError(t, s.UpdateData(ctx, &sourcediff.SourceDiff{
		Update: []sourcediff.FeatureDiff{{
			ID: model.IntID(1),
			AddOrUpdateProperties: []sourcediff.PropertyEntry{
				{Key: "name", Value: property.String("a2")},
			},
		}},
	}))
	require.NoError(t, s.UpdateData(ctx, &sourcediff.SourceDiff{
		Add: []*model.Feature{sourceFeature(3, "c")},
	}))

	// Nothing takes effect before Commit.
	f, _ := s.Get(model.IntID(1))
	assert.Equal(t, "a", f.Properties["name"].StringValue())
	assert.Equal(t, 2, s.Len())

	applied, err := s.Commit(ctx)
	require.NoError(t, err)
	assert.Len(t, applied.Add, 1)
	assert.Len(t, applied.Update, 1)

	f, _ = s.Get(model.IntID(1))
	assert.Equal(t, "a2", f.Properties["name"].StringValue())
	assert.Equal(t, 3, s.Len())
	assert.False(t, s.Pending())
}

func TestSource_CommitWithoutPendingDiff(t *testing.T) {
	s := NewSource()

	_, err := s.Commit(context.Background())
	assert.ErrorIs(t, err, ErrNoPendingDiff)
}

func TestSource_UpdateRejectedWithCause(t *testing.T) {
	ctx := context.Background()
	s := NewSource()

	dup := sourceFeature(1, "dup")
	s.SetData(ctx, sourcediff.CollectionValue([]*model.Feature{
		sourceFeature(1, "a"),
		dup,
	}))
	require.False(t, s.Updateable())

	err := s.UpdateData(ctx, &sourcediff.SourceDiff{RemoveAll: true})
	assert.ErrorIs(t, err, ErrNotUpdateable)

	var dupErr *ErrDuplicateFeatureID
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, model.IntID(1), dupErr.ID)
}

func TestSource_UpdateRejectedMissingID(t *testing.T) {
	ctx := context.Background()
	s := NewSource(WithPromoteID("ref"))

	noRef := &model.Feature{Geometry: orb.Point{0, 0}, Properties: property.Document{}}
	s.SetData(ctx, sourcediff.FeatureValue(noRef))

	err := s.UpdateData(ctx, &sourcediff.SourceDiff{RemoveAll: true})
	require.ErrorIs(t, err, ErrNotUpdateable)

	var missing *ErrMissingFeatureID
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "ref", missing.PromoteID)
}

func TestSource_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	store := tilestore.NewMemoryStore()
	compressor, err := tilestore.NewZstd()
	require.NoError(t, err)

	s := NewSource(WithStore(store), WithCompressor(compressor))
	s.SetData(ctx, sourcediff.CollectionValue([]*model.Feature{
		sourceFeature(1, "a"),
		sourceFeature(2, "b"),
	}))
	require.NoError(t, s.Snapshot(ctx, "snapshots/base"))

	restored := NewSource(WithStore(store), WithCompressor(compressor))
	require.NoError(t, restored.Restore(ctx, "snapshots/base"))

	assert.Equal(t, 2, restored.Len())
	f, ok := restored.Get(model.IntID(2))
	require.True(t, ok)
	assert.Equal(t, "b", f.Properties["name"].StringValue())
}

func TestSource_SnapshotWithoutStore(t *testing.T) {
	s := NewSource()
	assert.Error(t, s.Snapshot(context.Background(), "k"))
	assert.Error(t, s.Restore(context.Background(), "k"))
}

func TestSource_ToGeoJSONStableOrder(t *testing.T) {
	ctx := context.Background()
	rng := testutil.NewRNG(42)

	s := NewSource()
	s.SetData(ctx, sourcediff.CollectionValue(rng.Features(25)))

	fc := s.ToGeoJSON()
	require.Len(t, fc.Features, 25)

	ids := make([]string, 0, len(fc.Features))
	for _, f := range fc.Features {
		ids = append(ids, fmt.Sprint(f.ID))
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestSource_BasicMetrics(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}
	s := NewSource(WithMetricsCollector(metrics))

	s.SetData(ctx, sourcediff.CollectionValue([]*model.Feature{sourceFeature(1, "a")}))
	require.NoError(t, s.UpdateData(ctx, &sourcediff.SourceDiff{
		Remove: []model.FeatureID{model.IntID(1)},
	}))
	_, err := s.Commit(ctx)
	require.NoError(t, err)
	_, err = s.Commit(ctx)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.SetDataCount)
	assert.Equal(t, int64(1), stats.UpdateCount)
	assert.Equal(t, int64(0), stats.UpdateErrors)
	assert.Equal(t, int64(2), stats.CommitCount)
	assert.Equal(t, int64(1), stats.CommitErrors)
}
