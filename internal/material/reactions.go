package material

import (
	"encoding/json"
	"fmt"
	"io"
)

// Reaction replaces a touching pair of materials with products. The
// pair is unordered; lookup normalizes the key.
type Reaction struct {
	A           ID      `json:"a"`
	B           ID      `json:"b"`
	ProductA    ID      `json:"product_a"`
	ProductB    ID      `json:"product_b"`
	Probability float32 `json:"probability"`
	HeatDelta   float32 `json:"heat_delta"`
}

type reactionKey struct{ a, b ID }

// ReactionRegistry maps material pairs to their reaction, symmetric in
// (a, b). Populated once at startup, read-only afterwards.
type ReactionRegistry struct {
	reactions map[reactionKey]Reaction
}

// NewReactionRegistry creates an empty reaction registry.
func NewReactionRegistry() *ReactionRegistry {
	return &ReactionRegistry{reactions: make(map[reactionKey]Reaction)}
}

func normalize(a, b ID) reactionKey {
	if a > b {
		a, b = b, a
	}
	return reactionKey{a, b}
}

// Register adds a reaction for the unordered pair (r.A, r.B).
func (rr *ReactionRegistry) Register(r Reaction) {
	rr.reactions[normalize(r.A, r.B)] = r
}

// Find returns the reaction for the pair (a, b), oriented so that the
// first product corresponds to a. The second return is false when the
// pair does not react.
func (rr *ReactionRegistry) Find(a, b ID) (Reaction, bool) {
	r, ok := rr.reactions[normalize(a, b)]
	if !ok {
		return Reaction{}, false
	}
	if r.A != a {
		// Caller passed the pair in the opposite order; swap products.
		r.A, r.B = r.B, r.A
		r.ProductA, r.ProductB = r.ProductB, r.ProductA
	}
	return r, true
}

// Count returns the number of registered reactions.
func (rr *ReactionRegistry) Count() int {
	return len(rr.reactions)
}

// LoadJSON registers reactions read from external data.
func (rr *ReactionRegistry) LoadJSON(src io.Reader) error {
	var rs []Reaction
	if err := json.NewDecoder(src).Decode(&rs); err != nil {
		return fmt.Errorf("decode reactions: %w", err)
	}
	for _, r := range rs {
		rr.Register(r)
	}
	return nil
}

// DefaultReactions builds the built-in reaction table. The table is
// intentionally small; scenarios and configs extend it via LoadJSON.
func DefaultReactions() *ReactionRegistry {
	rr := NewReactionRegistry()
	rr.Register(Reaction{A: Water, B: Lava, ProductA: Steam, ProductB: Stone, Probability: 0.8, HeatDelta: 60})
	rr.Register(Reaction{A: Ice, B: Lava, ProductA: Water, ProductB: Stone, Probability: 0.9, HeatDelta: 40})
	rr.Register(Reaction{A: Acid, B: Stone, ProductA: Acid, ProductB: Air, Probability: 0.05, HeatDelta: 5})
	rr.Register(Reaction{A: Acid, B: IronOre, ProductA: Acid, ProductB: Air, Probability: 0.08, HeatDelta: 8})
	return rr
}
