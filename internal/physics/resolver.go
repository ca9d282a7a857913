package physics

// Rule is the response to an overlap between a (kind A) and b (kind B).
// It returns true if it changed anything. Rules may kill either entity.
type Rule func(a, b *Entity) bool

type pair struct {
	a, b Kind
}

// Resolver detects AABB overlaps and applies table-driven responses.
type Resolver struct {
	rules map[pair]Rule
}

// NewResolver returns a resolver with no rules.
func NewResolver() *Resolver {
	return &Resolver{rules: make(map[pair]Rule)}
}

// On registers the response for overlaps between kinds a and b. When the
// pair is met as (b, a) the arguments are swapped so rule always receives
// the a-kind entity first.
func (r *Resolver) On(a, b Kind, rule Rule) {
	r.rules[pair{a, b}] = rule
}

func (r *Resolver) lookup(x, y *Entity) (Rule, *Entity, *Entity) {
	if rule, ok := r.rules[pair{x.Kind, y.Kind}]; ok {
		return rule, x, y
	}
	if rule, ok := r.rules[pair{y.Kind, x.Kind}]; ok {
		return rule, y, x
	}
	return nil, nil, nil
}

// Resolve tests every pair of live entities in creation order and applies
// the matching rule as soon as an overlap is found, so later pairs see the
// updated state. Entities killed by a rule are skipped afterwards, which
// means nothing can be destroyed twice in one pass. Returns the number of
// responses that changed state.
func (r *Resolver) Resolve(entities []*Entity) int {
	applied := 0
	for i, x := range entities {
		if !x.Alive || x.Kind == KindNone {
			continue
		}
		for _, y := range entities[i+1:] {
			if !x.Alive {
				break
			}
			if !y.Alive || y.Kind == KindNone {
				continue
			}
			rule, a, b := r.lookup(x, y)
			if rule == nil {
				continue
			}
			if !a.Box().Overlaps(b.Box()) {
				continue
			}
			if rule(a, b) {
				applied++
			}
		}
	}
	return applied
}
