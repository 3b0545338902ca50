package git

import (
	pexec "github.com/prflow/prflow/exec"
)

// Service provides git and gh operations with explicit dependency injection.
// Each Service instance holds its own executor, enabling proper testing and
// avoiding global state.
type Service struct {
	executor pexec.CommandExecutor
}

// NewService creates a new Service with the default real executor.
func NewService() *Service {
	return &Service{executor: pexec.NewRealExecutor()}
}

// NewServiceWithExecutor creates a new Service with a custom executor.
// This is primarily used for testing where a mock executor is needed.
func NewServiceWithExecutor(exec pexec.CommandExecutor) *Service {
	return &Service{executor: exec}
}
