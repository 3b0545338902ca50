// Package git provides Git and GitHub CLI operations for the contribution workflow.
//
// The package is organized into focused modules:
//   - service.go: Service struct and constructors
//   - status.go: Working tree status, staged diff statistics
//   - commit.go: Staging, committing, pushing
//   - branch.go: Repository checks, branch management
//   - github.go: Pull request creation and merging via the gh CLI
package git
