// Package kb is the knowledge store behind the "metta" route source: a small
// s-expression fact base persisted in SQLite.
//
// Facts are atoms whose first child is a symbol, e.g.
//
//	(flight-route Toronto NewYork AirCanada (duration 1.5) (cost 220) (layovers 0))
//
// Files may mix facts with queries ("!(match &self ...)") and ";" comments;
// queries and comments are skipped on load.
//
// Storage:
//
//   - One row per fact, keyed by a monotonic ULID so Match returns facts in
//     assertion order.
//   - The head symbol and the first two arguments are indexed, which is all
//     flight lookups need (all flights, or flights from → to).
//   - Identical facts may be stored repeatedly; the store never deduplicates.
//     Seed is the exception at file level: a seed file whose content was
//     already loaded into the database is skipped.
//
// Typical use:
//
//	st, err := kb.Open("facts.db")
//	if err != nil { ... }
//	defer st.Close()
//	_, _, _ = st.Seed(ctx, "flights.metta")
//	facts, _ := st.DirectFacts(ctx, "Toronto", "London")
package kb
