// Package services contains the core transformation pipeline: header
// and value parsing, schema-driven row-to-document mapping, document
// assembly, and the upload orchestrator that drives them against the
// driven ports.
//
// The pipeline is sequential and purely in-memory; rows fold into
// documents strictly in file order within a group, and groups emit in
// first-seen order.
package services
