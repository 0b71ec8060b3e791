// Package metrics exposes ledger activity to Prometheus.
//
// Two pieces ship here: Observer, a ledger.Observer that counts failure
// and report events as they happen, and Collector, a
// prometheus.Collector that scrapes a Ledger's cumulative Stats.
//
// Ledgers are not thread-safe, and neither piece adds locking. Run
// collection on the goroutine that owns the ledger, or stop mutating
// the ledger while a scrape is in flight.
package metrics
