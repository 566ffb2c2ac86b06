package tilego

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/hupe1980/tilego/model"
	"github.com/hupe1980/tilego/sourcediff"
	"github.com/hupe1980/tilego/tilestore"
)

// Source holds the feature data of one GeoJSON source and accepts
// incremental diffs between full data replacements.
//
// Diffs submitted with UpdateData are coalesced into a single pending diff
// and take effect on Commit, mirroring the load cycle of a map renderer:
// updates arriving while a tile rebuild is in flight must not mutate the
// working set the rebuild is reading.
//
// All methods are safe for concurrent use.
type Source struct {
	mu   sync.Mutex
	opts options

	value      sourcediff.SourceValue
	updateable bool
	ws         sourcediff.WorkingSet
	pending    *sourcediff.SourceDiff
}

// NewSource creates an empty source. An empty source is updateable.
func NewSource(optFns ...Option) *Source {
	return &Source{
		opts:       applyOptions(optFns),
		value:      sourcediff.NullValue(),
		updateable: true,
		ws:         make(sourcediff.WorkingSet),
	}
}

// SetData replaces the source data wholesale. Any pending diff is
// discarded; a replacement supersedes every update queued before it.
func (s *Source) SetData(ctx context.Context, v sourcediff.SourceValue) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.value = v
	s.updateable = sourcediff.IsUpdateable(v, s.opts.promoteID)
	s.ws = sourcediff.ToWorkingSet(v, s.opts.promoteID)
	s.pending = nil

	s.opts.logger.LogSetData(ctx, len(s.ws), s.updateable)
	s.opts.metricsCollector.RecordSetData(len(s.ws), time.Since(start))
}

// UpdateData queues a diff against the current data. The diff is coalesced
// with any already-pending diff and takes effect on the next Commit.
//
// Returns ErrNotUpdateable (with a cause describing the offending feature)
// when the current data does not support diffs.
func (s *Source) UpdateData(ctx context.Context, diff *sourcediff.SourceDiff) error {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if !s.updateable {
		err = fmt.Errorf("%w: %w", ErrNotUpdateable, s.updateableCause())
	} else {
		s.pending = sourcediff.Merge(s.pending, diff)
	}

	var added, removed, updated int
	if diff != nil {
		added, removed, updated = len(diff.Add), len(diff.Remove), len(diff.Update)
	}
	s.opts.logger.LogUpdate(ctx, added, removed, updated, err)
	s.opts.metricsCollector.RecordUpdate(time.Since(start), err)
	return err
}

// Commit applies the pending diff to the working set and returns it, so the
// host can invalidate the affected tiles. Returns ErrNoPendingDiff when no
// diff is queued.
func (s *Source) Commit(ctx context.Context) (*sourcediff.SourceDiff, error) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending.Empty() {
		err := ErrNoPendingDiff
		s.opts.logger.LogCommit(ctx, len(s.ws), err)
		s.opts.metricsCollector.RecordCommit(len(s.ws), time.Since(start), err)
		return nil, err
	}

	applied := s.pending
	s.pending = nil
	sourcediff.Apply(s.ws, applied, s.opts.promoteID)

	s.opts.logger.LogCommit(ctx, len(s.ws), nil)
	s.opts.metricsCollector.RecordCommit(len(s.ws), time.Since(start), nil)
	return applied, nil
}

// Updateable reports whether the current data supports diffs.
func (s *Source) Updateable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateable
}

// Pending reports whether a diff is queued for the next Commit.
func (s *Source) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.pending.Empty()
}

// Get returns the committed feature for an id. The returned feature is
// shared with the working set and must not be mutated.
func (s *Source) Get(id model.FeatureID) (*model.Feature, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.ws[id]
	return f, ok
}

// Len returns the number of committed features.
func (s *Source) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ws)
}

// ToGeoJSON renders the committed working set as a feature collection, in
// stable id order.
func (s *Source) ToGeoJSON() *geojson.FeatureCollection {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]model.FeatureID, 0, len(s.ws))
	for id := range s.ws {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	fc := geojson.NewFeatureCollection()
	for _, id := range ids {
		fc.Append(s.ws[id].ToGeoJSON())
	}
	return fc
}

// Snapshot persists the committed working set to the configured store
// under the given key.
func (s *Source) Snapshot(ctx context.Context, key string) error {
	store, err := s.storeOrErr()
	if err != nil {
		return err
	}

	data, err := s.opts.codec.Marshal(s.ToGeoJSON())
	if err == nil && s.opts.compressor != nil {
		data, err = s.opts.compressor.Compress(data)
	}
	if err == nil {
		err = store.Put(ctx, key, data)
	}

	s.opts.logger.LogSnapshot(ctx, key, err)
	return err
}

// Restore loads a snapshot from the configured store and replaces the
// source data with it.
func (s *Source) Restore(ctx context.Context, key string) error {
	store, err := s.storeOrErr()
	if err != nil {
		return err
	}

	data, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if s.opts.compressor != nil {
		if data, err = s.opts.compressor.Decompress(data); err != nil {
			return err
		}
	}

	var fc geojson.FeatureCollection
	if err := s.opts.codec.Unmarshal(data, &fc); err != nil {
		return err
	}
	v, err := sourcediff.FromGeoJSONCollection(&fc)
	if err != nil {
		return err
	}

	s.SetData(ctx, v)
	return nil
}

func (s *Source) storeOrErr() (tilestore.Store, error) {
	if s.opts.store == nil {
		return nil, errors.New("no tile store configured")
	}
	return s.opts.store, nil
}

// updateableCause reports why the current value rejects diffs.
// Caller holds s.mu.
func (s *Source) updateableCause() error {
	seen := make(map[model.FeatureID]struct{})
	for _, f := range s.value.Features() {
		id := sourcediff.ResolveID(f, s.opts.promoteID)
		if !id.Valid() {
			return &ErrMissingFeatureID{PromoteID: s.opts.promoteID}
		}
		if _, dup := seen[id]; dup {
			return &ErrDuplicateFeatureID{ID: id}
		}
		seen[id] = struct{}{}
	}
	return errors.New("source is not updateable")
}
