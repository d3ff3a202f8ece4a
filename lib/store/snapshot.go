package store

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/glog"

	"github.com/pthm/hxconnect/lib/componentstate"
	"github.com/pthm/hxconnect/lib/encoding"
	"github.com/pthm/hxconnect/lib/state"
)

// ErrForeignSnapshot indicates a snapshot taken under a different registry
// epoch. Its component slices are keyed by ids that mean nothing here.
var ErrForeignSnapshot = errors.New("store: snapshot from a different component registry epoch")

const (
	snapshotEpochKey = "epoch"
	snapshotStateKey = "state"
)

// Snapshot encodes the current tree into a token.
func (s *Store) Snapshot(enc *encoding.Encoder, sensitive bool) (string, error) {
	payload := map[string]any{
		snapshotStateKey: map[string]any(s.State()),
	}
	if s.registry != nil {
		payload[snapshotEpochKey] = s.registry.Epoch().String()
	}
	return enc.EncodeMap(payload, sensitive)
}

// Restore replaces the tree with a snapshot and notifies listeners.
//
// Integers in the snapshot come back as int when they fit, so reducers that
// assert prev.(int) keep working after a restore. Other values keep their
// decoded types: floats are float64, lists are []any, maps are
// map[string]any.
//
// A snapshot carrying component slices from another registry epoch is
// rejected, since allocated instance ids are not stable across epochs.
func (s *Store) Restore(enc *encoding.Encoder, token string, sensitive bool) error {
	payload, err := enc.DecodeMap(token, sensitive)
	if err != nil {
		return err
	}

	tree, ok := payload[snapshotStateKey].(map[string]any)
	if !ok {
		return fmt.Errorf("%w: missing %q", encoding.ErrInvalidFormat, snapshotStateKey)
	}

	if _, hasComponents := tree[componentstate.RootKey]; hasComponents && s.registry != nil {
		epoch, _ := payload[snapshotEpochKey].(string)
		if epoch != s.registry.Epoch().String() {
			glog.Warningf("[store]rejecting snapshot from epoch %q\n", epoch)
			return ErrForeignSnapshot
		}
	}

	normalize(tree)

	s.mu.Lock()
	s.current = state.State(tree)
	s.mu.Unlock()

	s.notify()
	return nil
}

// normalize rewrites decoded integers to int in place, descending into maps
// and lists.
func normalize(v any) any {
	switch x := v.(type) {
	case int64:
		if x >= math.MinInt && x <= math.MaxInt {
			return int(x)
		}
	case uint64:
		if x <= math.MaxInt {
			return int(x)
		}
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
	}
	return v
}
