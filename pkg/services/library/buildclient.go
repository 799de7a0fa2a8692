package library

import (
	"context"

	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
)

//go:generate go run go.uber.org/mock/mockgen -source=$GOFILE -destination=mock/buildclient.go -package=mock_library BuildClient

// BuildClient talks to one Jenkins instance. Implementations are
// stateless adapters; connection and read timeouts are bounded here,
// not by callers.
type BuildClient interface {
	// ListJobs walks the server's folder hierarchy depth-first and
	// returns the leaf jobs with their fully qualified paths.
	ListJobs(ctx context.Context) ([]payloads.JenkinsJob, error)
	GetParameterDefinitions(ctx context.Context, target string) ([]payloads.ParameterDefinition, error)
	// GetGitBranches lists the branch names configured on the
	// target's SCM, when it has one.
	GetGitBranches(ctx context.Context, target string) ([]string, error)
	// TriggerBuild queues a build and returns the queue item
	// location reported by the server. Parameterless targets use the
	// plain build endpoint; parameterized ones use
	// buildWithParameters so parameters are never silently dropped.
	TriggerBuild(ctx context.Context, target string, params payloads.Parameters) (string, error)
}

// BuildClientFactory builds a client for a stored server
// configuration. The registry resolves the configuration at fire
// time, so a factory rather than a fixed client is injected.
type BuildClientFactory func(server *payloads.BuildServer) BuildClient
