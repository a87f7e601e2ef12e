package lr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pattyshack/wlp4c/ast"
)

type ConflictError struct {
	State  int
	Symbol string

	// Human readable descriptions of the competing actions.
	Existing    string
	Conflicting string
}

func (err *ConflictError) Error() string {
	return fmt.Sprintf(
		"state %d on %s: %s conflicts with %s",
		err.State,
		err.Symbol,
		err.Conflicting,
		err.Existing)
}

// An LR item: a production with a dot before Rhs[dot].
type lrItem struct {
	production int
	dot        int
}

type itemSet struct {
	kernel map[lrItem]lookaheadSet
	gotos  map[string]int
}

// tableBuilder constructs an LALR(1) automaton by building LR(1) item sets
// and merging sets with identical cores.  Lookahead growth in a merged set
// is propagated by re-queuing the set until a fixed point is reached.
type tableBuilder struct {
	productions []*ast.Production // the last entry is the augmented start
	augmented   int

	byLhs map[string][]int

	terminals   []string
	terminalIds map[string]int

	nullable map[string]bool
	first    map[string]lookaheadSet

	states []*itemSet
	byCore map[string]int
}

// Build generates the parse table for the given productions.  Production 0
// is the start production; its reduction at end of input is recorded under
// AcceptSymbol.
func Build(productions []*ast.Production) (*Table, error) {
	if len(productions) == 0 {
		return nil, fmt.Errorf("no productions")
	}

	for idx, production := range productions {
		if production.Id != idx {
			return nil, fmt.Errorf(
				"production (%s) has id %d, expected %d",
				production,
				production.Id,
				idx)
		}
	}

	builder := newTableBuilder(productions)
	builder.computeFirstSets()
	builder.buildStates()
	return builder.buildTable()
}

func newTableBuilder(productions []*ast.Production) *tableBuilder {
	augmented := &ast.Production{
		Id:  len(productions),
		Lhs: AcceptSymbol,
		Rhs: []string{productions[0].Lhs},
	}

	all := make([]*ast.Production, 0, len(productions)+1)
	all = append(all, productions...)
	all = append(all, augmented)

	builder := &tableBuilder{
		productions: all,
		augmented:   augmented.Id,
		byLhs:       map[string][]int{},
		terminalIds: map[string]int{},
		nullable:    map[string]bool{},
		first:       map[string]lookaheadSet{},
		byCore:      map[string]int{},
	}

	for _, production := range productions {
		builder.byLhs[production.Lhs] = append(
			builder.byLhs[production.Lhs],
			production.Id)
	}

	builder.addTerminal(AcceptSymbol)
	for _, production := range productions {
		for _, symbol := range production.Rhs {
			if !builder.isNonterminal(symbol) {
				builder.addTerminal(symbol)
			}
		}
	}

	for lhs := range builder.byLhs {
		builder.first[lhs] = builder.newSet()
	}

	return builder
}

func (builder *tableBuilder) addTerminal(symbol string) {
	_, ok := builder.terminalIds[symbol]
	if ok {
		return
	}
	builder.terminalIds[symbol] = len(builder.terminals)
	builder.terminals = append(builder.terminals, symbol)
}

func (builder *tableBuilder) isNonterminal(symbol string) bool {
	_, ok := builder.byLhs[symbol]
	return ok
}

func (builder *tableBuilder) newSet() lookaheadSet {
	return newLookaheadSet(len(builder.terminals))
}

func (builder *tableBuilder) computeFirstSets() {
	for changed := true; changed; {
		changed = false
		for _, production := range builder.productions[:builder.augmented] {
			first := builder.first[production.Lhs]

			allNullable := true
			for _, symbol := range production.Rhs {
				if !builder.isNonterminal(symbol) {
					if first.add(builder.terminalIds[symbol]) {
						changed = true
					}
					allNullable = false
					break
				}

				if first.union(builder.first[symbol]) {
					changed = true
				}

				if !builder.nullable[symbol] {
					allNullable = false
					break
				}
			}

			if allNullable && !builder.nullable[production.Lhs] {
				builder.nullable[production.Lhs] = true
				changed = true
			}
		}
	}
}

// FIRST(symbols follow)
func (builder *tableBuilder) firstOf(
	symbols []string,
	follow lookaheadSet,
) lookaheadSet {
	result := builder.newSet()
	for _, symbol := range symbols {
		if !builder.isNonterminal(symbol) {
			result.add(builder.terminalIds[symbol])
			return result
		}

		result.union(builder.first[symbol])
		if !builder.nullable[symbol] {
			return result
		}
	}

	result.union(follow)
	return result
}

func (builder *tableBuilder) closure(
	kernel map[lrItem]lookaheadSet,
) map[lrItem]lookaheadSet {
	items := make(map[lrItem]lookaheadSet, len(kernel))
	queue := make([]lrItem, 0, len(kernel))
	for item, lookaheads := range kernel {
		items[item] = lookaheads.clone()
		queue = append(queue, item)
	}

	for len(queue) > 0 {
		item := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		rhs := builder.productions[item.production].Rhs
		if item.dot >= len(rhs) || !builder.isNonterminal(rhs[item.dot]) {
			continue
		}

		lookaheads := builder.firstOf(rhs[item.dot+1:], items[item])
		for _, id := range builder.byLhs[rhs[item.dot]] {
			next := lrItem{production: id}
			existing, ok := items[next]
			if !ok {
				items[next] = lookaheads.clone()
				queue = append(queue, next)
			} else if existing.union(lookaheads) {
				queue = append(queue, next)
			}
		}
	}

	return items
}

func coreKey(kernel map[lrItem]lookaheadSet) string {
	items := make([]lrItem, 0, len(kernel))
	for item := range kernel {
		items = append(items, item)
	}

	sort.Slice(
		items,
		func(i int, j int) bool {
			if items[i].production != items[j].production {
				return items[i].production < items[j].production
			}
			return items[i].dot < items[j].dot
		})

	builder := strings.Builder{}
	for _, item := range items {
		fmt.Fprintf(&builder, "%d.%d ", item.production, item.dot)
	}
	return builder.String()
}

// Returns the state with the kernel's core, and whether the state is new or
// gained lookaheads.
func (builder *tableBuilder) mergeState(
	kernel map[lrItem]lookaheadSet,
) (
	int,
	bool,
) {
	key := coreKey(kernel)
	idx, ok := builder.byCore[key]
	if !ok {
		idx = len(builder.states)
		builder.byCore[key] = idx
		builder.states = append(
			builder.states,
			&itemSet{
				kernel: kernel,
				gotos:  map[string]int{},
			})
		return idx, true
	}

	changed := false
	existing := builder.states[idx].kernel
	for item, lookaheads := range kernel {
		if existing[item].union(lookaheads) {
			changed = true
		}
	}
	return idx, changed
}

func (builder *tableBuilder) buildStates() {
	startLookaheads := builder.newSet()
	startLookaheads.add(builder.terminalIds[AcceptSymbol])
	builder.mergeState(
		map[lrItem]lookaheadSet{
			{production: builder.augmented}: startLookaheads,
		})

	queue := []int{StartState}
	queued := map[int]bool{StartState: true}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		queued[state] = false

		nextKernels := map[string]map[lrItem]lookaheadSet{}
		for item, lookaheads := range builder.closure(builder.states[state].kernel) {
			rhs := builder.productions[item.production].Rhs
			if item.dot >= len(rhs) {
				continue
			}

			symbol := rhs[item.dot]
			kernel, ok := nextKernels[symbol]
			if !ok {
				kernel = map[lrItem]lookaheadSet{}
				nextKernels[symbol] = kernel
			}

			next := lrItem{production: item.production, dot: item.dot + 1}
			existing, ok := kernel[next]
			if !ok {
				kernel[next] = lookaheads.clone()
			} else {
				existing.union(lookaheads)
			}
		}

		symbols := make([]string, 0, len(nextKernels))
		for symbol := range nextKernels {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)

		for _, symbol := range symbols {
			next, changed := builder.mergeState(nextKernels[symbol])
			builder.states[state].gotos[symbol] = next
			if changed && !queued[next] {
				queued[next] = true
				queue = append(queue, next)
			}
		}
	}
}

func (builder *tableBuilder) buildTable() (*Table, error) {
	table := newTable(builder.productions[:builder.augmented])

	for state, set := range builder.states {
		for symbol, next := range set.gotos {
			table.addShift(state, symbol, next)
		}
	}

	for state, set := range builder.states {
		for item, lookaheads := range builder.closure(set.kernel) {
			production := builder.productions[item.production]
			if item.production == builder.augmented ||
				item.dot < len(production.Rhs) {
				continue
			}

			for _, terminal := range lookaheads.members() {
				symbol := builder.terminals[terminal]

				_, ok := table.Shift(state, symbol)
				if ok {
					return nil, &ConflictError{
						State:       state,
						Symbol:      symbol,
						Existing:    "shift",
						Conflicting: "reduce " + production.String(),
					}
				}

				prev, ok := table.Reduction(state, symbol)
				if ok && prev.Id != production.Id {
					return nil, &ConflictError{
						State:       state,
						Symbol:      symbol,
						Existing:    "reduce " + prev.String(),
						Conflicting: "reduce " + production.String(),
					}
				}

				table.addReduction(state, production.Id, symbol)
			}
		}
	}

	return table, nil
}
