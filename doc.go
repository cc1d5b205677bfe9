// Package scythe contains the core components of Scythe, a per-task file-scan
// execution primitive for distributed batch query engines. This root package
// defines the data types and collaborator interfaces which are employed when
// embedding Scythe in a larger engine, and is an excellent overview of
// Scythe's key concepts.
package scythe
