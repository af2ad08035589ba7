// Package registry provides tool registration and discovery.
//
// The in-process Registry holds tools for a single process: it compiles each
// tool's parameter schema into a descriptor on registration and serves
// lookups and descriptor listings to the agent runtime.
//
// Presence makes a process's toolkit discoverable across a deployment. Each
// instance announces itself to etcd under a leased key and renews the lease
// in the background, so crashed instances vanish from discovery when their
// lease expires.
package registry
