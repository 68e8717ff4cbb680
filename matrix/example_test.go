// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/dpmix/matrix"
)

// ExampleColumnSummaries summarises each column of a small table.
func ExampleColumnSummaries() {
	m, err := matrix.NewFromRows([][]float64{
		{1, 10},
		{2, 20},
		{3, 60},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	sums, _ := matrix.ColumnSummaries(m)
	for j, s := range sums {
		fmt.Printf("col %d: mean=%g range=[%g,%g] var=%g\n", j, s.Mean, s.Min, s.Max, s.Variance())
	}
	// Output:
	// col 0: mean=2 range=[1,3] var=1
	// col 1: mean=30 range=[10,60] var=700
}
