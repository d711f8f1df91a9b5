// Package credsdk is a typed Go client for the clientcred admin API.
//
// It covers the full credential lifecycle (create, duplicate, delete,
// migrate) plus the read projections and the network access check. All
// operations authenticate with a bearer token supplied by the caller;
// the SDK never mints tokens itself.
package credsdk
