// SPDX-License-Identifier: MIT

package view_test

import (
	"fmt"

	"github.com/katalvlaran/dpmix/suffstats"
	"github.com/katalvlaran/dpmix/view"
)

// ExampleView runs a short chain over a two-column table and checks the
// invariants after every iteration.
func ExampleView() {
	rows := [][]float64{
		{0.1, 0}, {0.3, 0}, {-0.2, 0},
		{9.8, 1}, {10.1, 1}, {10.4, 1},
	}
	data := make(map[int][]float64, len(rows))
	var xs, codes []float64
	for i, r := range rows {
		data[i] = r
		xs = append(xs, r[0])
		codes = append(codes, r[1])
	}
	cont, _ := suffstats.SpecFor(suffstats.Continuous, xs, 9)
	cat, _ := suffstats.SpecFor(suffstats.Multinomial, codes, 9)

	v, err := view.New([]int{0, 1}, []suffstats.Spec{cont, cat}, view.WithSeed(7))
	if err != nil {
		fmt.Println(err)
		return
	}
	for i := range rows {
		if _, err = v.InsertRow(data[i], i); err != nil {
			fmt.Println(err)
			return
		}
	}
	for iter := 0; iter < 10; iter++ {
		if err = v.Transition(data); err != nil {
			fmt.Println(err)
			return
		}
		if err = v.CheckConsistency(); err != nil {
			fmt.Println(err)
			return
		}
	}
	fmt.Println("rows:", v.NumVectors())
	fmt.Println("consistent:", v.CheckStatistics(data) == nil)
	// Output:
	// rows: 6
	// consistent: true
}
