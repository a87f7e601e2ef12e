package lr

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// WriteTo writes the table in the format accepted by Load.
func (table *Table) WriteTo(output io.Writer) (int64, error) {
	buffer := &bytes.Buffer{}

	fmt.Fprintln(buffer, cfgSection)
	for _, production := range table.Productions {
		fmt.Fprintln(buffer, production.String())
	}

	fmt.Fprintln(buffer, transitionsSection)
	for _, state := range sortedStates(table.Shifts) {
		row := table.Shifts[state]
		for _, symbol := range sortedSymbols(row) {
			fmt.Fprintf(buffer, "%d %s %d\n", state, symbol, row[symbol])
		}
	}

	fmt.Fprintln(buffer, reductionsSection)
	for _, state := range sortedStates(table.Reductions) {
		row := table.Reductions[state]
		for _, symbol := range sortedSymbols(row) {
			fmt.Fprintf(buffer, "%d %d %s\n", state, row[symbol], symbol)
		}
	}

	fmt.Fprintln(buffer, endSection)

	return buffer.WriteTo(output)
}

func sortedStates(rows map[int]map[string]int) []int {
	states := make([]int, 0, len(rows))
	for state := range rows {
		states = append(states, state)
	}
	sort.Ints(states)
	return states
}

func sortedSymbols(row map[string]int) []string {
	symbols := make([]string, 0, len(row))
	for symbol := range row {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}
