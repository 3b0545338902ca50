// Package workflow implements the Git/GitHub contribution workflow operations
// exposed by the prflow MCP server.
//
// The package is organized into focused modules:
//   - result.go: the Result type returned by every operation
//   - params.go: typed per-operation parameters, validated at the dispatch boundary
//   - service.go: Service struct and constructor
//   - commit.go: commit-and-push
//   - pullrequest.go: pull request creation
//   - merge.go: pull request merging
//   - complete.go: the composite commit → push → PR → merge sequence
package workflow
