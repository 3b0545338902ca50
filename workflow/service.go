package workflow

import (
	"github.com/prflow/prflow/git"
)

// Defaults applied when a request leaves the corresponding parameter unset.
const (
	DefaultRemote     = "origin"
	DefaultBaseBranch = "main"
)

// Service holds the collaborators for the workflow operations. One instance
// is constructed at startup and shared by the four tool handlers; it carries
// no mutable state, so concurrent invocations against different working
// directories are safe.
type Service struct {
	git        *git.Service
	remote     string
	baseBranch string
}

// Option configures a Service.
type Option func(*Service)

// WithRemote overrides the remote branches are pushed to.
func WithRemote(remote string) Option {
	return func(s *Service) {
		if remote != "" {
			s.remote = remote
		}
	}
}

// WithBaseBranch overrides the default base branch for pull requests.
func WithBaseBranch(branch string) Option {
	return func(s *Service) {
		if branch != "" {
			s.baseBranch = branch
		}
	}
}

// NewService creates a workflow Service backed by the given git service.
func NewService(g *git.Service, opts ...Option) *Service {
	s := &Service{
		git:        g,
		remote:     DefaultRemote,
		baseBranch: DefaultBaseBranch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
