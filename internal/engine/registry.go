package engine

import (
	"sort"

	"github.com/MdAyman7/wweagentsfun-sub000/internal/game"
)

// MoveRegistry is the immutable, queryable table of move definitions for a
// match. Construct once, share by reference; Register replaces wholesale.
type MoveRegistry struct {
	byID    map[string]game.MoveDef
	ordered []string
}

// NewMoveRegistry builds a registry from the given definitions. Later
// duplicates of an id replace earlier ones.
func NewMoveRegistry(moves []game.MoveDef) *MoveRegistry {
	r := &MoveRegistry{byID: make(map[string]game.MoveDef, len(moves))}
	r.Register(moves)
	return r
}

// Register replaces the registry content wholesale.
func (r *MoveRegistry) Register(moves []game.MoveDef) {
	r.byID = make(map[string]game.MoveDef, len(moves))
	r.ordered = r.ordered[:0]
	for _, m := range moves {
		if m.ID == "" {
			continue
		}
		if _, seen := r.byID[m.ID]; !seen {
			r.ordered = append(r.ordered, m.ID)
		}
		r.byID[m.ID] = m
	}
}

// Get returns the move definition for id.
func (r *MoveRegistry) Get(id string) (game.MoveDef, bool) {
	m, ok := r.byID[id]
	return m, ok
}

// All returns every move in registration order. Iteration order is part of
// the determinism contract, so the slice is rebuilt from the ordered ids.
func (r *MoveRegistry) All() []game.MoveDef {
	out := make([]game.MoveDef, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out
}

// Len reports the number of registered moves.
func (r *MoveRegistry) Len() int { return len(r.ordered) }

// ComboRegistry holds combo chains and answers opener/next-step queries for
// the tracker.
type ComboRegistry struct {
	byID     map[string]game.ComboDefinition
	ordered  []string
	byOpener map[string][]string
}

// NewComboRegistry builds the registry, indexing combos by their opening move.
func NewComboRegistry(combos []game.ComboDefinition) *ComboRegistry {
	r := &ComboRegistry{
		byID:     make(map[string]game.ComboDefinition, len(combos)),
		byOpener: make(map[string][]string),
	}
	for _, c := range combos {
		if c.ID == "" || len(c.Steps) == 0 {
			continue
		}
		if _, seen := r.byID[c.ID]; !seen {
			r.ordered = append(r.ordered, c.ID)
		}
		r.byID[c.ID] = c
	}
	for _, id := range r.ordered {
		opener := r.byID[id].Steps[0].MoveID
		r.byOpener[opener] = append(r.byOpener[opener], id)
	}
	for opener := range r.byOpener {
		sort.Strings(r.byOpener[opener])
	}
	return r
}

// Get returns the combo definition for id.
func (r *ComboRegistry) Get(id string) (game.ComboDefinition, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// CombosOpenedBy returns the ids of combos whose first step is moveID, in a
// stable order.
func (r *ComboRegistry) CombosOpenedBy(moveID string) []string {
	return r.byOpener[moveID]
}

// IsOpener reports whether moveID starts at least one combo.
func (r *ComboRegistry) IsOpener(moveID string) bool {
	return len(r.byOpener[moveID]) > 0
}

// All returns every combo in registration order.
func (r *ComboRegistry) All() []game.ComboDefinition {
	out := make([]game.ComboDefinition, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}
	return out
}

// FinisherTable maps a moveset key to its finisher definition.
type FinisherTable struct {
	byMoveset map[string]game.FinisherDef
}

// NewFinisherTable builds the table. Later duplicates of a moveset replace
// earlier ones.
func NewFinisherTable(finishers []game.FinisherDef) *FinisherTable {
	t := &FinisherTable{byMoveset: make(map[string]game.FinisherDef, len(finishers))}
	for _, f := range finishers {
		if f.Moveset == "" {
			continue
		}
		t.byMoveset[f.Moveset] = f
	}
	return t
}

// ForMoveset returns the finisher registered for the moveset key.
func (t *FinisherTable) ForMoveset(moveset string) (game.FinisherDef, bool) {
	f, ok := t.byMoveset[moveset]
	return f, ok
}
