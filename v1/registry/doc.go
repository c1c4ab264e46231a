// Package registry maintains the table of named embedding clients.
//
// Registration is eager: the provider handle is constructed immediately,
// so a bad endpoint or model surfaces at registration time rather than on
// the first embedding call. Re-registering a name is last-write-wins; the
// replaced handle is closed. All clients are torn down together by Close
// at session end — there is no per-client destroy.
//
// The registry is guarded by a single read/write mutex held only for the
// map access itself, never across a network call.
package registry
