package gen

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/txstore/storage/txstore/model"
)

// StoreModelDiff returns a description of the first difference
// found between store and model or an empty string if their
// states match.
func StoreModelDiff(store Store, storeModel *model.StoreModel) string {
	if store.Depth() != storeModel.Depth() {
		return fmt.Sprintf("model depth = %d, actual depth = %d\n", storeModel.Depth(), store.Depth())
	}

	if store.Count() != storeModel.Count() {
		return fmt.Sprintf("model count = %d, actual count = %d\n", storeModel.Count(), store.Count())
	}

	if diff := cmp.Diff(storeModel.Committed(), store.Committed()); diff != "" {
		return fmt.Sprintf("committed tables don't match: %s", diff)
	}

	if diff := cmp.Diff(storeModel.Pending(), store.Pending()); diff != "" {
		return fmt.Sprintf("open transactions don't match: %s", diff)
	}

	for _, key := range Keys {
		expectedValue, expectedOK := storeModel.Get(key)
		value, ok := store.Get(key)

		if expectedValue != value || expectedOK != ok {
			return fmt.Sprintf("Get(%q): model = (%d, %t), actual = (%d, %t)\n", key, expectedValue, expectedOK, value, ok)
		}
	}

	return ""
}

func response(value int, ok bool, count int, err error) model.Response {
	r := model.Response{Value: value, OK: ok, Count: count}

	if err != nil {
		r.Err = err.Error()
	}

	return r
}
