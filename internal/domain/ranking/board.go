// Package ranking keeps districts ordered by growth for top-N queries.
package ranking

import (
	"fmt"
	"hash/fnv"
	"math"
	"sync"

	"github.com/okian/headcount/internal/domain/types"
)

// Treap-based ordered board.
//
// Ordering: growth DESC, then name ASC (deterministic).
// less() means "ranks earlier", so an in-order walk yields the board from best to worst.

// growthScale fixes growth values to 9 decimal places; growth is already rounded to 3.
const growthScale = 1_000_000_000

type growthFP int64

func toFixedPoint(x float64) growthFP {
	if math.IsNaN(x) {
		return 0
	}
	scaled := x * growthScale
	if scaled > float64(math.MaxInt64) {
		return growthFP(math.MaxInt64)
	}
	if scaled < float64(math.MinInt64) {
		return growthFP(math.MinInt64)
	}
	return growthFP(math.Round(scaled))
}

func toFloat(x growthFP) float64 { return float64(x) / growthScale }

type node struct {
	name   string
	growth growthFP
	prio   uint64
	left   *node
	right  *node
	size   int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aGrowth, aName) ranks before (bGrowth, bName).
func less(aGrowth growthFP, aName string, bGrowth growthFP, bName string) bool {
	if aGrowth != bGrowth {
		return aGrowth > bGrowth
	}
	return aName < bName
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

// namePriority derives a heap priority from the name so tree shape is reproducible.
func namePriority(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

func insert(n *node, name string, g growthFP) *node {
	if n == nil {
		return &node{name: name, growth: g, prio: namePriority(name), size: 1}
	}
	if less(g, name, n.growth, n.name) {
		n.left = insert(n.left, name, g)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, name, g)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

// collectTopN appends up to limit entries in rank order.
func collectTopN(n *node, limit int, out *[]types.GrowthEntry) {
	if n == nil || len(*out) >= limit {
		return
	}
	collectTopN(n.left, limit, out)
	if len(*out) < limit {
		*out = append(*out, types.GrowthEntry{Rank: len(*out) + 1, Name: n.name, Growth: toFloat(n.growth)})
	}
	if len(*out) < limit {
		collectTopN(n.right, limit, out)
	}
}

// rankOf returns the 1-based in-order position of (name, g).
func rankOf(n *node, name string, g growthFP) int {
	rank := 0
	for n != nil {
		switch {
		case g == n.growth && name == n.name:
			return rank + nsize(n.left) + 1
		case less(g, name, n.growth, n.name):
			n = n.left
		default:
			rank += nsize(n.left) + 1
			n = n.right
		}
	}
	return 0
}

// Board is an ordered set of (name, growth) pairs. Each name appears at most once.
// Ranks are positional: ties on growth are split by name.
type Board struct {
	mu     sync.RWMutex
	root   *node
	byName map[string]growthFP
}

// NewBoard constructs an empty board.
func NewBoard() *Board {
	return &Board{byName: make(map[string]growthFP)}
}

// Add ranks name with growth in O(log n) expected time. A name already on the board
// is rejected with ErrDuplicate.
func (b *Board) Add(name string, growth float64) error {
	g := toFixedPoint(growth)

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.byName[name]; ok {
		return fmt.Errorf("%q: %w", name, ErrDuplicate)
	}
	b.byName[name] = g
	b.root = insert(b.root, name, g)
	return nil
}

// Rank returns the entry for name with its 1-based position, or ErrNotFound.
func (b *Board) Rank(name string) (types.GrowthEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	g, ok := b.byName[name]
	if !ok {
		return types.GrowthEntry{}, ErrNotFound
	}
	return types.GrowthEntry{Rank: rankOf(b.root, name, g), Name: name, Growth: toFloat(g)}, nil
}

// TopN returns up to n entries ordered by growth desc, name asc.
func (b *Board) TopN(n int) ([]types.GrowthEntry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]types.GrowthEntry, 0, min(n, len(b.byName)))
	collectTopN(b.root, n, &out)
	return out, nil
}

// Count returns the number of ranked names.
func (b *Board) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.byName)
}
