// Package model contains the shared interfaces and data structures.
//
// # Criteria for adding a type to this package
//
// This package should contain two types:
//
// 1. important interfaces that are shared by several packages
// within the codebase, with the objective of separating unrelated
// pieces of code and making unit testing easier;
//
// 2. important pieces of data that are shared across different
// packages (e.g., the engine status vocabulary).
//
// In general, this package should not contain logic, unless
// this logic is strictly related to data structures and we
// cannot implement this logic elsewhere.
//
// # Content of this package
//
// The following list summarizes the categories of types that
// currently belong here and names the files in which they are implemented:
//
// - engine.go: the narrow interface through which we drive a
// callback-based TLS/DTLS engine, plus the engine codes;
//
// - logger.go: generic definition of an apex/log compatible logger,
// used in several places across the codebase;
//
// - status.go: the engine status vocabulary;
//
// - stream.go: the duplex byte stream supplied by applications;
//
// - trust.go: the peer trust object returned by engines.
package model
