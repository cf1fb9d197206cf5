package kb_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/skyroute/kb"
)

const sampleFacts = `
; sample flights
(flight-route Toronto NewYork AirCanada (duration 1.5) (cost 220) (layovers 0))
(flight-route Toronto London AirCanada (duration 7.2) (cost 520) (layovers 0))
(flight-route "New York" London Delta (duration 6.8) (cost 480) (layovers 0))
!(match &self (flight-route Toronto $to $air $d $c $l) $to)
(airport Toronto YYZ)
`

func openMem(t *testing.T) *kb.Store {
	t.Helper()
	st, err := kb.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// ---- 1. Parsing ----

func TestParse_SkipsQueriesAndComments(t *testing.T) {
	atoms, err := kb.Parse(sampleFacts)
	require.NoError(t, err)
	require.Len(t, atoms, 4)

	assert.Equal(t, kb.FlightRoute, atoms[0].Head())
	assert.Equal(t, "airport", atoms[3].Head())

	from, ok := atoms[2].Children[1].Name()
	require.True(t, ok)
	assert.Equal(t, "New York", from)

	dur := atoms[0].Children[4]
	assert.Equal(t, "duration", dur.Head())
	assert.Equal(t, kb.KindNumber, dur.Children[1].Kind)
	assert.InDelta(t, 1.5, dur.Children[1].Num, 1e-12)
}

func TestParse_RoundTripRendering(t *testing.T) {
	src := `(flight-route "New York" Paris Delta (duration 7.1) (cost 510) (layovers 0))`
	a, err := kb.ParseAtom(src)
	require.NoError(t, err)
	assert.Equal(t, src, a.String())

	built := kb.Expr(kb.Sym("cost"), kb.Num(120))
	assert.Equal(t, "(cost 120)", built.String())
}

func TestParse_SymbolsThatLookNumeric(t *testing.T) {
	a, err := kb.ParseAtom(`(x Inf NaN -3 +.5 0x10)`)
	require.NoError(t, err)
	kinds := make([]kb.Kind, 0, 5)
	for _, c := range a.Children[1:] {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []kb.Kind{kb.KindSymbol, kb.KindSymbol, kb.KindNumber, kb.KindNumber, kb.KindSymbol}, kinds)
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"unclosed":    "(flight-route a b",
		"stray close": "(a b))",
		"open string": `(a "bc)`,
		"bare query":  "!",
		"newline str": "(a \"b\nc\")",
		"later line":  "(a b)\n\n(c",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := kb.Parse(src)
			require.ErrorIs(t, err, kb.ErrSyntax)
		})
	}

	_, err := kb.Parse("(a b)\n\n(c")
	require.ErrorContains(t, err, "line 3")

	_, err = kb.ParseAtom("(a) (b)")
	require.ErrorIs(t, err, kb.ErrSyntax)
}

// ---- 2. Store ----

func TestStore_LoadAndMatch(t *testing.T) {
	ctx := context.Background()
	st := openMem(t)
	require.NoError(t, st.Probe(ctx))

	n, err := st.Load(ctx, sampleFacts)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	total, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, total)

	flights, err := st.FlightFacts(ctx)
	require.NoError(t, err)
	require.Len(t, flights, 3)
	// Insertion order is preserved.
	to, _ := flights[1].Children[2].Name()
	assert.Equal(t, "London", to)

	direct, err := st.DirectFacts(ctx, "New York", "London")
	require.NoError(t, err)
	require.Len(t, direct, 1)
	air, _ := direct[0].Children[3].Name()
	assert.Equal(t, "Delta", air)

	none, err := st.DirectFacts(ctx, "London", "Toronto")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = st.Match(ctx, kb.FlightRoute, "a", "b", "c")
	require.Error(t, err)
}

func TestStore_AssertKeepsDuplicates(t *testing.T) {
	ctx := context.Background()
	st := openMem(t)

	fact, err := kb.ParseAtom(`(flight-route A B X (duration 1) (cost 10) (layovers 0))`)
	require.NoError(t, err)
	require.NoError(t, st.Assert(ctx, fact))
	require.NoError(t, st.Assert(ctx, fact))

	got, err := st.DirectFacts(ctx, "A", "B")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_RejectsNonFacts(t *testing.T) {
	ctx := context.Background()
	st := openMem(t)

	require.ErrorIs(t, st.Assert(ctx, kb.Num(3)), kb.ErrNotFact)
	require.ErrorIs(t, st.Assert(ctx, kb.Expr()), kb.ErrNotFact)

	// A bad fact aborts the whole load.
	_, err := st.Load(ctx, "(a b) 42")
	require.ErrorIs(t, err, kb.ErrNotFact)
	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_FilePersistence(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "facts.db")
	srcPath := filepath.Join(dir, "flights.metta")
	require.NoError(t, os.WriteFile(srcPath, []byte(sampleFacts), 0o600))

	st, err := kb.Open(dbPath)
	require.NoError(t, err)
	n, err := st.LoadFile(ctx, srcPath)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, st.Close())

	reopened, err := kb.Open(dbPath)
	require.NoError(t, err)
	defer reopened.Close()
	flights, err := reopened.FlightFacts(ctx)
	require.NoError(t, err)
	assert.Len(t, flights, 3)

	_, err = reopened.LoadFile(ctx, filepath.Join(dir, "missing.metta"))
	require.Error(t, err)
}

func TestStore_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "facts.db")
	srcPath := filepath.Join(dir, "flights.metta")
	require.NoError(t, os.WriteFile(srcPath, []byte(sampleFacts), 0o600))

	for boot := 0; boot < 3; boot++ {
		st, err := kb.Open(dbPath)
		require.NoError(t, err)
		n, skipped, err := st.Seed(ctx, srcPath)
		require.NoError(t, err)
		if boot == 0 {
			assert.Equal(t, 4, n)
			assert.False(t, skipped)
		} else {
			assert.Zero(t, n)
			assert.True(t, skipped, "boot %d", boot)
		}
		total, err := st.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, total, "boot %d", boot)
		require.NoError(t, st.Close())
	}

	st, err := kb.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	// Asserted facts stay duplicate-preserving alongside seeding.
	dup, err := kb.ParseAtom("(flight-route Rome Madrid Iberia (duration 2.5) (cost 130) (layovers 0))")
	require.NoError(t, err)
	require.NoError(t, st.Assert(ctx, dup))
	require.NoError(t, st.Assert(ctx, dup))
	total, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, total)

	// Edited content is a new seed.
	extra := sampleFacts + "(flight-route Oslo Paris SAS (duration 2) (cost 90) (layovers 0))\n"
	require.NoError(t, os.WriteFile(srcPath, []byte(extra), 0o600))
	n, skipped, err := st.Seed(ctx, srcPath)
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, 5, n)

	// A bad file records nothing, so a corrected file still loads.
	badPath := filepath.Join(dir, "bad.metta")
	require.NoError(t, os.WriteFile(badPath, []byte("(a b) 42"), 0o600))
	_, _, err = st.Seed(ctx, badPath)
	require.ErrorIs(t, err, kb.ErrNotFact)

	_, _, err = st.Seed(ctx, filepath.Join(dir, "missing.metta"))
	require.Error(t, err)
}

func TestStore_ClosedAndCancelled(t *testing.T) {
	st, err := kb.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.ErrorIs(t, st.Probe(context.Background()), kb.ErrClosed)

	live := openMem(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, live.Probe(ctx))
}

func TestStore_ConcurrentAsserts(t *testing.T) {
	ctx := context.Background()
	st, err := kb.Open(filepath.Join(t.TempDir(), "c.db"))
	require.NoError(t, err)
	defer st.Close()

	fact := kb.Expr(kb.Sym(kb.FlightRoute), kb.Sym("A"), kb.Sym("B"), kb.Sym("X"))
	const workers, each = 4, 10
	var wg sync.WaitGroup
	errs := make(chan error, workers*each)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				errs <- st.Assert(ctx, fact)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	n, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, workers*each, n)
}
