// Package domain contains the core types for the fireload CLI:
// CSV rows, typed field values, the declarative schema tree, and the
// collection specification that binds a CSV file to its target
// collection and optional schema.
//
// Domain types have no dependencies on adapters or external services.
package domain
