// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them:
//
//   - DocumentStore: persists assembled documents (Firestore, MongoDB, memory)
//   - RowSource: yields raw CSV rows in source order
//   - ConfigStore: application configuration
//   - HistoryStore: journal of upload runs
package driven
