package main

import (
	"math/rand"
	"sort"

	"github.com/lanrat/arraysort/jsarray"
	"github.com/lanrat/arraysort/value"
)

// entry is the payload of every generated element. seq is the element's
// position in the input, which makes stability checkable.
type entry struct {
	key int
	seq int
}

// shape fills n keys. Keys below zero become holes.
type shape func(rng *rand.Rand, n int) []int

var shapes = map[string]shape{
	"random": func(rng *rand.Rand, n int) []int {
		return fill(n, func(int) int { return rng.Intn(n + 1) })
	},
	"sorted": func(rng *rand.Rand, n int) []int {
		return fill(n, func(i int) int { return i })
	},
	"reversed": func(rng *rand.Rand, n int) []int {
		return fill(n, func(i int) int { return n - i })
	},
	"sawtooth": func(rng *rand.Rand, n int) []int {
		tooth := 1 + rng.Intn(64)
		return fill(n, func(i int) int { return i % tooth })
	},
	"few-unique": func(rng *rand.Rand, n int) []int {
		return fill(n, func(int) int { return rng.Intn(4) })
	},
	"runs": func(rng *rand.Rand, n int) []int {
		// ascending and descending runs of random length
		keys := make([]int, 0, n)
		for len(keys) < n {
			l := min(n-len(keys), 1+rng.Intn(200))
			start := rng.Intn(n + 1)
			desc := rng.Intn(2) == 0
			for i := 0; i < l; i++ {
				if desc {
					keys = append(keys, start-i)
				} else {
					keys = append(keys, start+i)
				}
			}
		}
		return keys
	},
	"holes": func(rng *rand.Rand, n int) []int {
		return fill(n, func(int) int {
			if rng.Intn(4) == 0 {
				return -1
			}
			return rng.Intn(n + 1)
		})
	},
}

func shapeNames() []string {
	names := make([]string, 0, len(shapes))
	for name := range shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fill(n int, f func(i int) int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = f(i)
	}
	return keys
}

// build returns a live array holding keys, along with the values that were
// stored in it. Negative keys leave a hole, except in the "runs" shape whose
// descending runs can go below zero.
func build(keys []int, holes bool) (*jsarray.Array, []value.Value) {
	arr := jsarray.New(len(keys))
	present := make([]value.Value, 0, len(keys))
	for i, k := range keys {
		if holes && k < 0 {
			continue
		}
		v := value.NewObject(entry{key: k, seq: i})
		arr.Set(i, v)
		present = append(present, v)
	}
	arr.SetLength(len(keys))
	return arr, present
}

func entryOf(v value.Value) entry {
	return v.(*value.Object).Data.(entry)
}
