// Package models defines domain entities for the Intelligent Insure client.
//
// The package contains two categories of types:
//
// 1. Transient values exchanged with the recommendation service:
//   - [Credentials] : email/password pair, lives only for one submit action
//   - [TokenPair] : opaque bearer tokens issued by the service
//   - [ProfileInput] : the four-field profile a recommendation is computed from
//   - [Recommendation] : the immutable result of a recommendation request
//
// 2. Persistent entities backed by the local database:
//   - [Submission] : a profile plus the recommendation it produced, kept as
//     local history
//
// Persistent entities implement the [Model] interface providing ID generation,
// timestamps and validation. The [Repository] interface defines the standard
// data access operations implemented in the repositories package.
package models
