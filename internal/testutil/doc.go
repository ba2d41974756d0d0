// Package testutil provisions throwaway airport databases for tests and
// scenario runs.
//
// The engine itself never creates a schema; these helpers stand in for the
// provisioning step that real deployments perform ahead of time.
package testutil
