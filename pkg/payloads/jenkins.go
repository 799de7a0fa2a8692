package payloads

import "time"

// BuildServer is a named Jenkins endpoint a job can trigger builds
// on. The API token is never serialized back to clients.
type BuildServer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Username  string    `json:"username,omitempty"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// JenkinsJob is one leaf job found while walking the server's folder
// hierarchy. FullPath uses Jenkins' "folder/job/name" traversal form
// and is what gets stored as a target; DisplayName is the
// slash-joined human form.
type JenkinsJob struct {
	FullPath    string `json:"fullPath"`
	DisplayName string `json:"displayName"`
	Kind        string `json:"kind"`
}

type ParameterKind string

const (
	ParameterString  ParameterKind = "string"
	ParameterText    ParameterKind = "text"
	ParameterChoice  ParameterKind = "choice"
	ParameterBoolean ParameterKind = "boolean"
	ParameterGitRef  ParameterKind = "git-ref"
	ParameterOther   ParameterKind = "other"
)

// ParameterDefinition describes one build parameter of a target.
// Kind is a closed set; new upstream parameter types map to
// ParameterOther until given their own kind.
type ParameterDefinition struct {
	Name        string        `json:"name"`
	Kind        ParameterKind `json:"kind"`
	Description string        `json:"description,omitempty"`
	Default     any           `json:"default,omitempty"`
	Choices     []string      `json:"choices,omitempty"`
}

// TargetResult is the outcome of triggering a single target during a
// fan-out.
type TargetResult struct {
	Target        string `json:"target"`
	Success       bool   `json:"success"`
	QueueLocation string `json:"queueLocation,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ExecutionResult aggregates one fan-out attempt.
type ExecutionResult struct {
	Status       ExecutionStatus `json:"status"`
	SuccessCount int             `json:"successCount"`
	FailureCount int             `json:"failureCount"`
	Targets      []TargetResult  `json:"targets"`
}
