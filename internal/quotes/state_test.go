package quotes

import (
	"testing"
	"time"

	"github.com/cyfung/portfolio-helper-sub001/internal/model"
)

func TestState_BeginTick(t *testing.T) {
	st := newState()

	if !st.beginTick("AAPL") {
		t.Fatal("first beginTick should succeed")
	}
	if st.beginTick("AAPL") {
		t.Error("second beginTick for an in-flight symbol should fail")
	}
	if !st.beginTick("MSFT") {
		t.Error("beginTick for a different symbol should succeed")
	}

	st.endTick("AAPL")
	if !st.beginTick("AAPL") {
		t.Error("beginTick after endTick should succeed")
	}
}

func TestState_Commit(t *testing.T) {
	st := newState()
	st.subs = []subscriber{{fn: func(string, model.QuoteRecord) {}}}

	price := 150.0
	prev := 148.0
	rec, subs, ok := st.commit("AAPL", model.Quote{Price: &price, PreviousClose: &prev})
	if !ok {
		t.Fatal("commit on a live state should succeed")
	}
	if rec.Symbol != "AAPL" || rec.Price != &price || rec.PreviousClose != &prev {
		t.Errorf("committed record = %+v", rec)
	}
	if rec.UpdatedAt.IsZero() {
		t.Error("committed record has zero UpdatedAt")
	}
	if len(subs) != 1 {
		t.Errorf("subscriber snapshot length = %d, want 1", len(subs))
	}

	cached, found := st.get("AAPL")
	if !found || cached.UpdatedAt != rec.UpdatedAt {
		t.Errorf("cache entry = (%+v, %v), want the committed record", cached, found)
	}
}

func TestState_Commit_AfterStop(t *testing.T) {
	st := newState()
	st.records["AAPL"] = model.NewPlaceholder("AAPL")
	before, _ := st.get("AAPL")

	st.phase = phaseStopped

	price := 150.0
	if _, _, ok := st.commit("AAPL", model.Quote{Price: &price}); ok {
		t.Error("commit after stop should report discarded")
	}

	after, _ := st.get("AAPL")
	if after != before {
		t.Errorf("commit after stop mutated the cache: %+v -> %+v", before, after)
	}
}

func TestState_GetAll(t *testing.T) {
	st := newState()
	st.records["AAPL"] = model.QuoteRecord{Symbol: "AAPL", UpdatedAt: time.Now()}

	out := st.getAll([]string{"AAPL", "MSFT"})
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out["AAPL"].UpdatedAt.IsZero() {
		t.Error("known symbol lost its record")
	}
	if got := out["MSFT"]; got.Symbol != "MSFT" || got.HasQuote() || !got.UpdatedAt.IsZero() {
		t.Errorf("unknown symbol = %+v, want all-absent record", got)
	}
}

func TestState_Tracked_Sorted(t *testing.T) {
	st := newState()
	for _, sym := range []string{"MSFT", "AAPL", "GOOG"} {
		st.records[sym] = model.NewPlaceholder(sym)
	}

	got := st.tracked()
	want := []string{"AAPL", "GOOG", "MSFT"}
	if len(got) != len(want) {
		t.Fatalf("tracked = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tracked = %v, want %v", got, want)
		}
	}
}
