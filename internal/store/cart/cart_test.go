package cart

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/kridana/kridana-api/internal/platform/localstore"
)

func price(v float64) *float64 { return &v }

func shoe() Product {
	return Product{ID: "p1", ProductName: "Shoe", ProductPrice: price(500), ProductImages: []string{"x.jpg"}}
}

func newLocalStore(ctx context.Context, t *testing.T) (*Store, localstore.Store) {
	t.Helper()
	local := localstore.NewMemory()
	return NewStore(ctx, local, nil, "u1"), local
}

func TestAddItemMergesOnIdentityKey(t *testing.T) {
	s, _ := newLocalStore(context.Background(), t)

	for range 3 {
		s.AddItem(shoe(), "M")
	}

	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", lines[0].Quantity)
	}
}

func TestAddItemDistinguishesSizeVariants(t *testing.T) {
	s, _ := newLocalStore(context.Background(), t)

	s.AddItem(shoe(), "M")
	s.AddItem(shoe(), "L")

	lines := s.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected two lines for distinct sizes, got %d", len(lines))
	}
	if lines[0].SizeVariant == lines[1].SizeVariant {
		t.Fatal("expected distinct size variants")
	}
}

func TestAddItemWithoutIdentityIsNoOp(t *testing.T) {
	s, _ := newLocalStore(context.Background(), t)

	s.AddItem(Product{ProductName: "Mystery"}, "M")

	if len(s.Lines()) != 0 {
		t.Fatal("expected product without identity to be ignored")
	}
}

func TestSizeFallbackChain(t *testing.T) {
	cases := []struct {
		name     string
		product  Product
		size     string
		expected string
	}{
		{"explicit wins", Product{ID: "p", SelectedSize: "S", BaseSize: "XS"}, "M", "M"},
		{"selected size", Product{ID: "p", SelectedSize: "S", BaseSize: "XS"}, "", "S"},
		{"base size", Product{ID: "p", BaseSize: "XS"}, "", "XS"},
		{"not applicable", Product{ID: "p"}, "", SizeNotApplicable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line, ok := Normalize(tc.product, tc.size)
			if !ok {
				t.Fatal("expected normalization to succeed")
			}
			if line.SizeVariant != tc.expected {
				t.Fatalf("expected size %q, got %q", tc.expected, line.SizeVariant)
			}
		})
	}
}

func TestNormalizeFieldFallbacks(t *testing.T) {
	line, ok := Normalize(Product{ProductID: "alt-7", Title: "Bat", ProductImages: []string{"a.jpg", "b.jpg"}}, "")
	if !ok {
		t.Fatal("expected normalization to succeed")
	}
	if line.ItemID != "alt-7" || line.Name != "Bat" || line.ImageRef != "a.jpg" {
		t.Fatalf("unexpected line: %+v", line)
	}
	if line.UnitPrice != 0 {
		t.Fatalf("expected missing price to normalize to 0, got %v", line.UnitPrice)
	}
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	s, _ := newLocalStore(context.Background(), t)
	s.AddItem(shoe(), "M")
	s.AddItem(Product{ID: "p2", Name: "Ball", Price: price(50)}, "")

	s.UpdateQuantity("p1", 7, "M")

	lines := s.Lines()
	if lines[0].Quantity != 7 {
		t.Fatalf("expected quantity 7, got %d", lines[0].Quantity)
	}
	if lines[1].Quantity != 1 {
		t.Fatalf("other line must be untouched, got quantity %d", lines[1].Quantity)
	}
}

func TestUpdateQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -1} {
		s, _ := newLocalStore(context.Background(), t)
		s.AddItem(shoe(), "M")

		s.UpdateQuantity("p1", qty, "M")

		if len(s.Lines()) != 0 {
			t.Fatalf("quantity %d should remove the line", qty)
		}
	}
}

func TestUpdateQuantityAbsentLineIsNoOp(t *testing.T) {
	s, _ := newLocalStore(context.Background(), t)
	s.AddItem(shoe(), "M")

	s.UpdateQuantity("p1", 5, "L")
	s.UpdateQuantity("nope", 5, "M")

	lines := s.Lines()
	if len(lines) != 1 || lines[0].Quantity != 1 {
		t.Fatalf("expected untouched cart, got %+v", lines)
	}
}

func TestRemoveItemAbsentIsNoOp(t *testing.T) {
	s, _ := newLocalStore(context.Background(), t)
	s.AddItem(shoe(), "M")

	s.RemoveItem("p1", "L")

	if len(s.Lines()) != 1 {
		t.Fatal("expected remove with wrong size to be a no-op")
	}
}

func TestTotalTreatsMissingPriceAsZero(t *testing.T) {
	s, _ := newLocalStore(context.Background(), t)
	s.AddItem(shoe(), "M")
	s.AddItem(Product{ID: "free", Name: "Sticker"}, "")

	total := s.Total()
	if math.IsNaN(total) {
		t.Fatal("total must not be NaN")
	}
	if total != 500 {
		t.Fatalf("expected 500, got %v", total)
	}
}

func TestEndToEndCartScenario(t *testing.T) {
	s, _ := newLocalStore(context.Background(), t)

	s.AddItem(shoe(), "M")
	lines := s.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	want := Line{ItemID: "p1", Name: "Shoe", UnitPrice: 500, ImageRef: "x.jpg", SizeVariant: "M", Quantity: 1}
	if lines[0] != want {
		t.Fatalf("unexpected line %+v", lines[0])
	}

	s.AddItem(shoe(), "M")
	if s.Lines()[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", s.Lines()[0].Quantity)
	}

	s.UpdateQuantity("p1", 1, "M")
	if s.Lines()[0].Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", s.Lines()[0].Quantity)
	}

	s.RemoveItem("p1", "M")
	if len(s.Lines()) != 0 || s.Total() != 0 || s.Count() != 0 {
		t.Fatalf("expected empty cart, got lines=%d total=%v count=%d",
			len(s.Lines()), s.Total(), s.Count())
	}
}

func TestMutationsPersistLocallyBeforeMirrorConfirms(t *testing.T) {
	local := localstore.NewMemory()
	s := NewStore(context.Background(), local, nil, "u1")

	s.AddItem(shoe(), "M")

	raw, ok, err := local.Get("cart:u1")
	if err != nil || !ok {
		t.Fatalf("expected local persistence, ok=%v err=%v", ok, err)
	}
	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		t.Fatalf("local payload not JSON: %v", err)
	}
	if len(lines) != 1 || lines[0].ItemID != "p1" {
		t.Fatalf("unexpected local payload: %+v", lines)
	}
}

func TestMirrorReceivesFullReplace(t *testing.T) {
	mirror := NewMockMirror()
	s := NewStore(context.Background(), localstore.NewMemory(), mirror, "u1")

	s.AddItem(shoe(), "M")
	s.AddItem(Product{ID: "p2", Name: "Ball", Price: price(50)}, "")
	s.Flush()

	remote := mirror.Lines("u1")
	if len(remote) != 2 {
		t.Fatalf("expected 2 mirrored lines, got %d", len(remote))
	}

	s.RemoveItem("p2", SizeNotApplicable)
	s.Flush()

	remote = mirror.Lines("u1")
	if len(remote) != 1 || remote[0].ItemID != "p1" {
		t.Fatalf("expected mirror to reflect removal, got %+v", remote)
	}
}

func TestMirrorFailureDoesNotBlockLocalState(t *testing.T) {
	mirror := NewMockMirror()
	mirror.ReplaceErr = errors.New("firestore unavailable")
	s := NewStore(context.Background(), localstore.NewMemory(), mirror, "u1")

	s.AddItem(shoe(), "M")
	s.Flush()

	if len(s.Lines()) != 1 {
		t.Fatal("local state must stand when mirror write fails")
	}
}

func TestRemoteWinsOverLocalCacheOnLogin(t *testing.T) {
	local := localstore.NewMemory()
	stale := []Line{{ItemID: "old", SizeVariant: SizeNotApplicable, Quantity: 9}}
	data, _ := json.Marshal(stale)
	_ = local.Set("cart:u1", string(data))

	mirror := NewMockMirror()
	mirror.Seed("u1", []Line{{ItemID: "p1", Name: "Shoe", UnitPrice: 500, SizeVariant: "M", Quantity: 2}})

	s := NewStore(context.Background(), local, mirror, "u1")

	lines := s.Lines()
	if len(lines) != 1 || lines[0].ItemID != "p1" || lines[0].Quantity != 2 {
		t.Fatalf("expected remote lines to win, got %+v", lines)
	}
}

func TestEmptyRemoteCartReplacesLocalCache(t *testing.T) {
	local := localstore.NewMemory()
	stale := []Line{{ItemID: "old", SizeVariant: SizeNotApplicable, Quantity: 9}}
	data, _ := json.Marshal(stale)
	_ = local.Set("cart:u1", string(data))

	// Mirror fetch succeeds with no lines; the empty result still wins.
	mirror := NewMockMirror()

	s := NewStore(context.Background(), local, mirror, "u1")

	if len(s.Lines()) != 0 {
		t.Fatalf("expected empty remote cart to replace the cache, got %+v", s.Lines())
	}
}

func TestLocalCacheUsedWhenMirrorFetchFails(t *testing.T) {
	local := localstore.NewMemory()
	cached := []Line{{ItemID: "p1", SizeVariant: "M", Quantity: 1}}
	data, _ := json.Marshal(cached)
	_ = local.Set("cart:u1", string(data))

	mirror := NewMockMirror()
	mirror.FetchErr = errors.New("network down")

	s := NewStore(context.Background(), local, mirror, "u1")

	if len(s.Lines()) != 1 || s.Lines()[0].ItemID != "p1" {
		t.Fatalf("expected local cache fallback, got %+v", s.Lines())
	}
}

func TestClearEmptiesBothLayers(t *testing.T) {
	local := localstore.NewMemory()
	mirror := NewMockMirror()
	s := NewStore(context.Background(), local, mirror, "u1")

	s.AddItem(shoe(), "M")
	s.Flush()
	s.Clear()
	s.Flush()

	if len(s.Lines()) != 0 {
		t.Fatal("expected empty cart")
	}
	if _, ok, _ := local.Get("cart:u1"); ok {
		t.Fatal("expected local key removed")
	}
	if len(mirror.Lines("u1")) != 0 {
		t.Fatal("expected mirror cleared")
	}
}

func TestManagerReturnsSameStorePerUser(t *testing.T) {
	m := NewManager(localstore.NewMemory(), nil)
	ctx := context.Background()

	a := m.ForUser(ctx, "u1")
	b := m.ForUser(ctx, "u1")
	c := m.ForUser(ctx, "u2")

	if a != b {
		t.Fatal("expected the same store for one user")
	}
	if a == c {
		t.Fatal("expected distinct stores for distinct users")
	}
}
