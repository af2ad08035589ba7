// Package catalog provides a shared catalog of compiled tool descriptors.
//
// Processes that serve tools publish their descriptors here; the agent
// runtime lists the catalog to learn which tools exist across a deployment
// without connecting to every toolkit process. The Redis implementation
// stores each descriptor as JSON and tracks the set of published names.
package catalog
