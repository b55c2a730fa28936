//go:build property

package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestStoreProperties validates set/get and file round-trip properties
func TestStoreProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// Property: the last Set for a key is what Get returns
	properties.Property("get returns last set value", prop.ForAll(
		func(key string, values []string) bool {
			if len(values) == 0 {
				return true
			}
			store := New()
			for _, v := range values {
				store.Set(key, v)
			}
			got, err := store.Get(key)
			return err == nil && got == values[len(values)-1]
		},
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
	))

	// Property: save then load into a fresh store reproduces every pair
	// whose key and value contain no separator or newline
	properties.Property("save/load round trip", prop.ForAll(
		func(pairs map[string]string) bool {
			src := New()
			for k, v := range pairs {
				if k == "" || strings.ContainsAny(k+v, "=\n\r") {
					continue
				}
				src.Set(k, v)
			}

			dir, err := os.MkdirTemp("", "settings-prop-")
			if err != nil {
				return false
			}
			defer os.RemoveAll(dir)
			path := filepath.Join(dir, "config.txt")

			if err := src.SaveToFile(path); err != nil {
				return false
			}
			dst := New()
			if err := dst.LoadFromFile(path); err != nil {
				return false
			}

			want := src.Snapshot()
			got := dst.Snapshot()
			if len(want) != len(got) {
				return false
			}
			for k, v := range want {
				if got[k] != v {
					return false
				}
			}
			return true
		},
		gen.MapOf(gen.Identifier(), gen.AlphaString()),
	))

	properties.TestingRun(t)
}
