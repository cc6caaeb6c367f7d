package enumeration

import (
	"testing"

	"github.com/dd0wney/cluso-threatmap/pkg/dfd"
	"github.com/dd0wney/cluso-threatmap/pkg/threats"
)

func registryWith(t *testing.T, elements ...*dfd.Element) *dfd.Registry {
	t.Helper()
	r := dfd.NewRegistry()
	for _, e := range elements {
		if err := r.AddElement(e); err != nil {
			t.Fatalf("AddElement failed: %v", err)
		}
	}
	return r
}

func categoriesFor(generated []*threats.Threat, elementID string) []threats.Category {
	var cats []threats.Category
	for _, t := range generated {
		if t.DFDElement == elementID {
			cats = append(cats, t.Category)
		}
	}
	return cats
}

func TestGenerate_ProcessGetsAllSix(t *testing.T) {
	r := registryWith(t, dfd.NewElement("Game Application", dfd.TypeProcess, "GAME"))

	generated := NewNaiveSTRIDE().Generate(r, nil)
	if len(generated) != 6 {
		t.Fatalf("Expected 6 threats for a process, got %d", len(generated))
	}
	if generated[0].Category != threats.CategorySpoofing {
		t.Errorf("Expected table order starting with Spoofing, got %v", generated[0].Category)
	}
	for _, g := range generated {
		if g.Status != threats.StatusUnmanaged {
			t.Errorf("Expected stub status Unmanaged, got %v", g.Status)
		}
		if g.ID != "" {
			t.Errorf("Expected stub id to be unassigned, got %q", g.ID)
		}
		if g.DFDElement != "GAME" {
			t.Errorf("Expected stub bound to GAME, got %q", g.DFDElement)
		}
	}
}

func TestGenerate_DatastoreAndExternalEntity(t *testing.T) {
	r := registryWith(t,
		dfd.NewElement("Game File", dfd.TypeDatastore, "FILE"),
		dfd.NewElement("user", dfd.TypeExternalEntity, "USER"),
	)

	generated := NewNaiveSTRIDE().Generate(r, nil)

	fileCats := categoriesFor(generated, "FILE")
	if len(fileCats) != 4 {
		t.Errorf("Expected 4 categories for a datastore, got %v", fileCats)
	}
	for _, c := range fileCats {
		if c == threats.CategorySpoofing || c == threats.CategoryElevationOfPrivilege {
			t.Errorf("Datastore must not get %v", c)
		}
	}

	userCats := categoriesFor(generated, "USER")
	if len(userCats) != 2 ||
		userCats[0] != threats.CategorySpoofing ||
		userCats[1] != threats.CategoryRepudiation {
		t.Errorf("Expected external entity to get [Spoofing Repudiation], got %v", userCats)
	}
}

func TestGenerate_Deduplicates(t *testing.T) {
	r := registryWith(t, dfd.NewElement("Game Application", dfd.TypeProcess, "GAME"))
	existing := []*threats.Threat{
		{ID: "THREAT1", Name: "existing", Category: threats.CategoryTampering, DFDElement: "GAME"},
	}

	generated := NewNaiveSTRIDE().Generate(r, existing)
	if len(generated) != 5 {
		t.Fatalf("Expected 5 threats with Tampering already covered, got %d", len(generated))
	}
	for _, g := range generated {
		if g.Category == threats.CategoryTampering {
			t.Error("Expected no second Tampering threat for the same element")
		}
	}
}

func TestGenerate_FlowSpoofingOnBoundaryCrossing(t *testing.T) {
	r := registryWith(t,
		dfd.NewElement("A", dfd.TypeProcess, "A"),
		dfd.NewElement("B", dfd.TypeProcess, "B"),
		dfd.NewElement("C", dfd.TypeProcess, "C"),
	)
	crossing, _ := dfd.NewFlow("a to b", "A", "B", false, "AB")
	internal, _ := dfd.NewFlow("b to c", "B", "C", false, "BC")
	if err := r.AddFlow(crossing); err != nil {
		t.Fatalf("AddFlow failed: %v", err)
	}
	if err := r.AddFlow(internal); err != nil {
		t.Fatalf("AddFlow failed: %v", err)
	}
	if err := r.AddBoundary(dfd.NewBoundary("zone", []string{"B", "C"}, "")); err != nil {
		t.Fatalf("AddBoundary failed: %v", err)
	}

	generated := NewNaiveSTRIDE().Generate(r, nil)

	// A is unbound, B is in "zone": the flow crosses.
	abCats := categoriesFor(generated, "AB")
	if len(abCats) != 4 {
		t.Errorf("Expected 4 categories for the crossing flow, got %v", abCats)
	}
	if abCats[len(abCats)-1] != threats.CategorySpoofing {
		t.Errorf("Expected Spoofing appended for the crossing flow, got %v", abCats)
	}

	// B and C share "zone": no spoofing.
	bcCats := categoriesFor(generated, "BC")
	if len(bcCats) != 3 {
		t.Errorf("Expected 3 categories for the internal flow, got %v", bcCats)
	}
	for _, c := range bcCats {
		if c == threats.CategorySpoofing {
			t.Error("Expected no Spoofing for a same-boundary flow")
		}
	}
}

func TestGenerate_SameNamedBoundariesStillCross(t *testing.T) {
	r := registryWith(t,
		dfd.NewElement("A", dfd.TypeProcess, "A"),
		dfd.NewElement("B", dfd.TypeProcess, "B"),
	)
	f, _ := dfd.NewFlow("a to b", "A", "B", false, "AB")
	if err := r.AddFlow(f); err != nil {
		t.Fatalf("AddFlow failed: %v", err)
	}
	// Two distinct boundaries that happen to share a name. The endpoints
	// live in different boundaries, so the flow crosses.
	if err := r.AddBoundary(dfd.NewBoundary("zone", []string{"A"}, "Z1")); err != nil {
		t.Fatalf("AddBoundary failed: %v", err)
	}
	if err := r.AddBoundary(dfd.NewBoundary("zone", []string{"B"}, "Z2")); err != nil {
		t.Fatalf("AddBoundary failed: %v", err)
	}

	generated := NewNaiveSTRIDE().Generate(r, nil)

	abCats := categoriesFor(generated, "AB")
	if len(abCats) != 4 || abCats[len(abCats)-1] != threats.CategorySpoofing {
		t.Errorf("Expected Spoofing for a flow between same-named boundaries, got %v", abCats)
	}
}

func TestGenerate_BothUnboundIsNotACrossing(t *testing.T) {
	r := registryWith(t,
		dfd.NewElement("A", dfd.TypeProcess, "A"),
		dfd.NewElement("B", dfd.TypeProcess, "B"),
	)
	f, _ := dfd.NewFlow("a to b", "A", "B", false, "AB")
	if err := r.AddFlow(f); err != nil {
		t.Fatalf("AddFlow failed: %v", err)
	}

	generated := NewNaiveSTRIDE().Generate(r, nil)
	for _, c := range categoriesFor(generated, "AB") {
		if c == threats.CategorySpoofing {
			t.Error("Expected no Spoofing when both endpoints are unbound")
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	r := registryWith(t,
		dfd.NewElement("Game Application", dfd.TypeProcess, "GAME"),
		dfd.NewElement("Game File", dfd.TypeDatastore, "FILE"),
	)
	f, _ := dfd.NewFlow("game data", "FILE", "GAME", true, "DATA")
	if err := r.AddFlow(f); err != nil {
		t.Fatalf("AddFlow failed: %v", err)
	}

	engine := NewNaiveSTRIDE()
	first := engine.Generate(r, nil)
	second := engine.Generate(r, nil)

	if len(first) != len(second) {
		t.Fatalf("Expected identical result size, got %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name ||
			first[i].Category != second[i].Category ||
			first[i].DFDElement != second[i].DFDElement {
			t.Errorf("Run mismatch at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerate_NameFormat(t *testing.T) {
	r := registryWith(t, dfd.NewElement("user", dfd.TypeExternalEntity, "USER"))

	generated := NewNaiveSTRIDE().Generate(r, nil)
	want := "Spoofing threat against user"
	if generated[0].Name != want {
		t.Errorf("Expected %q, got %q", want, generated[0].Name)
	}
}
