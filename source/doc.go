// Package source turns a query's source selector into the graph view the
// search runs over.
//
// Two sources exist:
//
//   - Graph ("python", "graph", "static"): the static store's current
//     snapshot, returned as is.
//   - External ("metta", "external"): flight facts pulled from an
//     ExternalSource, translated with TranslateFact and overlaid on the
//     static snapshot. Facts and the static graph are complementary, so
//     flights identical to a static one are not duplicated.
//
// The external store is optional. Resolve never fails: a missing store, a
// failed probe, a query error or a timeout all yield the static snapshot,
// with the cause recorded in Resolution.Degraded, a warning logged, and
// skyroute_adapter_degraded_total incremented. Malformed facts are skipped
// one by one.
//
// Fetches are bounded by the adapter timeout (DefaultTimeout unless
// WithTimeout says otherwise) and deduplicated with singleflight, so a burst
// of external queries costs one round trip.
package source
