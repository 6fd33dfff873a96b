package main

import (
	"fmt"
	"math/rand"

	"github.com/lanrat/arraysort"
	"github.com/lanrat/arraysort/jsarray"
	"github.com/lanrat/arraysort/value"
)

var count = int(1e6) // 1M

// compareNumeric behaves like (a, b) => a - b
func compareNumeric(this value.Value, args []value.Value) (value.Value, error) {
	a, err := value.ToNumber(args[0])
	if err != nil {
		return nil, err
	}
	b, err := value.ToNumber(args[1])
	if err != nil {
		return nil, err
	}
	return value.Number(a - b), nil
}

func main() {
	// create a sparse array of unsorted data
	arr := jsarray.New(count)
	for i := 0; i < count; i++ {
		if i%10 == 0 {
			continue // leave a hole
		}
		arr.Set(i, value.Int(rand.Int31()))
	}
	arr.SetLength(count)

	// sort it in place, holes move to the end
	err := arraysort.SortArray(arr, value.NewFunction(compareNumeric), nil)
	if err != nil {
		fmt.Printf("err: %s", err.Error())
		return
	}

	// print output sorted data
	for i := 0; i < arr.Length() && arr.HasIndex(i); i++ {
		fmt.Printf("%s\n", value.Inspect(arr.Get(i)))
	}
	fmt.Printf("%d holes\n", arr.Holes())
}
