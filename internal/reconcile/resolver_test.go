package reconcile

import "testing"

func TestResolverKeepsMinimumPrice(t *testing.T) {
	r := NewResolver()
	r.Observe(Winner{SpecID: "S1", SpecTable: "CPUSpecifications", Price: 500})
	r.Observe(Winner{SpecID: "S1", SpecTable: "CPUSpecifications", Price: 450, URL: "https://store/cheap"})
	r.Observe(Winner{SpecID: "S1", SpecTable: "CPUSpecifications", Price: 600})

	winners := r.Winners()
	if len(winners) != 1 {
		t.Fatalf("winners = %d, want 1", len(winners))
	}
	if winners[0].Price != 450 || winners[0].URL != "https://store/cheap" {
		t.Fatalf("winner = %+v, want price 450 from cheap url", winners[0])
	}
}

func TestResolverTieKeepsFirstSeen(t *testing.T) {
	r := NewResolver()
	r.Observe(Winner{SpecID: "S1", Price: 450, URL: "https://store/first"})
	r.Observe(Winner{SpecID: "S1", Price: 450, URL: "https://store/second"})

	if got := r.Winners()[0].URL; got != "https://store/first" {
		t.Fatalf("tie winner url = %q, want first observation kept", got)
	}
}

func TestResolverPreservesFirstSeenOrder(t *testing.T) {
	r := NewResolver()
	r.Observe(Winner{SpecID: "B", Price: 10})
	r.Observe(Winner{SpecID: "A", Price: 20})
	r.Observe(Winner{SpecID: "B", Price: 5})

	winners := r.Winners()
	if len(winners) != 2 {
		t.Fatalf("winners = %d, want 2", len(winners))
	}
	if winners[0].SpecID != "B" || winners[1].SpecID != "A" {
		t.Fatalf("order = %s,%s, want B,A", winners[0].SpecID, winners[1].SpecID)
	}
	if winners[0].Price != 5 {
		t.Fatalf("B price = %d, want 5", winners[0].Price)
	}
}

func TestResolverSpecIDs(t *testing.T) {
	r := NewResolver()
	r.Observe(Winner{SpecID: "A", Price: 1})
	r.Observe(Winner{SpecID: "B", Price: 2})
	r.Observe(Winner{SpecID: "A", Price: 3})

	ids := r.SpecIDs()
	if len(ids) != 2 {
		t.Fatalf("ids = %d, want 2", len(ids))
	}
	for _, want := range []string{"A", "B"} {
		if _, ok := ids[want]; !ok {
			t.Fatalf("missing id %s", want)
		}
	}
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}
}
