// Package selfcheck exercises a transaction store end to end through
// its public API and reports the first behaviour that doesn't hold.
package selfcheck

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/txstore/instrument"
	"github.com/jrife/txstore/storage/txstore"
	"github.com/jrife/txstore/utils/log"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type store = txstore.MemoryStore[string, interface{}]

// Scenario is a named check run against a fresh store
type Scenario struct {
	Name  string
	Check func(s *store) error
}

// Scenarios lists every check Run performs, in order
var Scenarios = []Scenario{
	{Name: "isolation", Check: checkIsolation},
	{Name: "read-priority", Check: checkReadPriority},
	{Name: "commit-flattening", Check: checkCommitFlattening},
	{Name: "rollback-scope", Check: checkRollbackScope},
	{Name: "precondition-enforcement", Check: checkPreconditions},
	{Name: "end-to-end", Check: checkEndToEnd},
	{Name: "empty-commit", Check: checkEmptyCommit},
	{Name: "zero-values", Check: checkZeroValues},
}

// Run runs every scenario against its own store. It stops at the
// first failing scenario and returns an error naming it.
func Run(ctx context.Context, logger *zap.Logger) error {
	for _, scenario := range Scenarios {
		scenarioCtx := log.WithFields(ctx, zap.String("scenario", scenario.Name))
		l := log.WithContext(scenarioCtx, logger)
		l.Debug("start")

		if err := scenario.Check(txstore.New[string, interface{}]()); err != nil {
			l.Error("failed", zap.Error(err))

			return errors.Wrapf(err, "scenario %s", scenario.Name)
		}

		l.Info("passed")
	}

	return nil
}

// Demo drives an instrumented store through one transaction
// so that profiler output can be observed
func Demo(profiler *instrument.Profiler) error {
	memoryStore := txstore.New[string, int]()
	s := instrument.Instrument[string, int](memoryStore, profiler)

	s.Begin()

	if err := s.Set("z", 9999); err != nil {
		return errors.Wrap(err, "demo set")
	}

	if err := s.Commit(); err != nil {
		return errors.Wrap(err, "demo commit")
	}

	if diff := cmp.Diff(map[string]int{"z": 9999}, memoryStore.Committed()); diff != "" {
		return errors.Errorf("unexpected committed table after demo: %s", diff)
	}

	if s.Depth() != 0 {
		return errors.Errorf("expected no open transactions after demo, got %d", s.Depth())
	}

	return nil
}

func set(s *store, key string, value interface{}) error {
	if err := s.Set(key, value); err != nil {
		return errors.Wrapf(err, "Set(%q, %#v)", key, value)
	}

	return nil
}

func expectGet(s *store, key string, expected interface{}, expectedOK bool) error {
	value, ok := s.Get(key)

	if ok != expectedOK || !cmp.Equal(value, expected) {
		return errors.Errorf("Get(%q) = (%#v, %t), expected (%#v, %t)", key, value, ok, expected, expectedOK)
	}

	return nil
}

func expectState(s *store, committed map[string]interface{}, pending []map[string]interface{}) error {
	if diff := cmp.Diff(committed, s.Committed()); diff != "" {
		return errors.Errorf("committed table mismatch: %s", diff)
	}

	if diff := cmp.Diff(pending, s.Pending()); diff != "" {
		return errors.Errorf("open transactions mismatch: %s", diff)
	}

	if s.Count() != len(committed) {
		return errors.Errorf("Count() = %d, expected %d", s.Count(), len(committed))
	}

	return nil
}

func checkIsolation(s *store) error {
	for i := 0; i < 3; i++ {
		s.Begin()

		if err := set(s, fmt.Sprintf("k%d", i), i); err != nil {
			return err
		}

		if s.Count() != 0 {
			return errors.Errorf("Count() = %d before commit, expected 0", s.Count())
		}
	}

	return expectState(s, map[string]interface{}{}, []map[string]interface{}{{"k0": 0}, {"k1": 1}, {"k2": 2}})
}

func checkReadPriority(s *store) error {
	for _, write := range []struct {
		key   string
		value interface{}
	}{{"a", 1}, {"b", 2}, {"a", 3}} {
		s.Begin()

		if err := set(s, write.key, write.value); err != nil {
			return err
		}
	}

	if err := expectGet(s, "a", 3, true); err != nil {
		return err
	}

	if err := expectGet(s, "b", 2, true); err != nil {
		return err
	}

	return expectGet(s, "c", nil, false)
}

func checkCommitFlattening(s *store) error {
	s.Begin()

	if err := set(s, "c", 5); err != nil {
		return err
	}

	if err := set(s, "e", 1); err != nil {
		return err
	}

	s.Begin()

	if err := set(s, "d", 6); err != nil {
		return err
	}

	s.Begin()

	if err := set(s, "e", 7); err != nil {
		return err
	}

	if err := set(s, "e", 99); err != nil {
		return err
	}

	if err := expectState(s, map[string]interface{}{}, []map[string]interface{}{{"c": 5, "e": 1}, {"d": 6}, {"e": 99}}); err != nil {
		return err
	}

	if err := s.Commit(); err != nil {
		return errors.Wrap(err, "Commit()")
	}

	return expectState(s, map[string]interface{}{"c": 5, "d": 6, "e": 99}, []map[string]interface{}{})
}

func checkRollbackScope(s *store) error {
	s.Begin()

	if err := set(s, "d", "yep"); err != nil {
		return err
	}

	s.Begin()

	if err := set(s, "d", "nope"); err != nil {
		return err
	}

	if err := expectState(s, map[string]interface{}{}, []map[string]interface{}{{"d": "yep"}, {"d": "nope"}}); err != nil {
		return err
	}

	if err := s.Rollback(); err != nil {
		return errors.Wrap(err, "Rollback()")
	}

	return expectState(s, map[string]interface{}{}, []map[string]interface{}{{"d": "yep"}})
}

func checkPreconditions(s *store) error {
	s.Begin()

	if err := set(s, "a", 1); err != nil {
		return err
	}

	if err := s.Commit(); err != nil {
		return errors.Wrap(err, "Commit()")
	}

	calls := map[string]func() error{
		"Set":      func() error { return s.Set("b", 2) },
		"Commit":   s.Commit,
		"Rollback": s.Rollback,
	}

	for name, call := range calls {
		if err := call(); err != txstore.ErrNoActiveTransaction {
			return errors.Errorf("%s() with no open transaction returned %v, expected %v", name, err, txstore.ErrNoActiveTransaction)
		}

		if err := expectState(s, map[string]interface{}{"a": 1}, []map[string]interface{}{}); err != nil {
			return errors.Wrapf(err, "after failed %s()", name)
		}
	}

	return nil
}

func checkEndToEnd(s *store) error {
	s.Begin()

	if err := set(s, "a", "5"); err != nil {
		return err
	}

	s.Begin()

	if err := set(s, "b", 19); err != nil {
		return err
	}

	s.Begin()

	if err := s.Commit(); err != nil {
		return errors.Wrap(err, "Commit()")
	}

	return expectState(s, map[string]interface{}{"a": "5", "b": 19}, []map[string]interface{}{})
}

func checkEmptyCommit(s *store) error {
	s.Begin()

	if err := set(s, "a", 1); err != nil {
		return err
	}

	if err := s.Commit(); err != nil {
		return errors.Wrap(err, "Commit()")
	}

	s.Begin()

	if err := s.Commit(); err != nil {
		return errors.Wrap(err, "Commit()")
	}

	return expectState(s, map[string]interface{}{"a": 1}, []map[string]interface{}{})
}

func checkZeroValues(s *store) error {
	s.Begin()

	if err := set(s, "n", 7); err != nil {
		return err
	}

	if err := set(s, "s", "x"); err != nil {
		return err
	}

	if err := s.Commit(); err != nil {
		return errors.Wrap(err, "Commit()")
	}

	s.Begin()

	if err := set(s, "n", 0); err != nil {
		return err
	}

	s.Begin()

	if err := set(s, "s", ""); err != nil {
		return err
	}

	if err := expectGet(s, "n", 0, true); err != nil {
		return err
	}

	return expectGet(s, "s", "", true)
}
