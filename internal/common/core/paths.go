package core

import (
	"net/url"
	"strings"
)

// JobPathBuilder constructs Jenkins URL paths for folder-qualified job
// names. Jenkins addresses a job nested in folders as
// "job/<folder>/job/<name>", so every segment of the slash-joined full
// name is encoded individually and interleaved with the "job"
// traversal delimiter. A segment is never double-encoded nor left
// unencoded.
type JobPathBuilder struct {
	segments []string
}

func NewJobPathBuilder() *JobPathBuilder {
	return &JobPathBuilder{segments: []string{}}
}

// Job appends the segments of a full job name. Both stored forms are
// accepted: the traversal form "team/job/app" produced by the job
// lister and the plain slash-joined form "team/app"; either adds
// "job/team/job/app". Empty segments from doubled or trailing slashes
// are skipped.
func (p *JobPathBuilder) Job(fullName string) *JobPathBuilder {
	segments := strings.Split(fullName, "/")
	if strings.Contains(fullName, "/job/") {
		segments = strings.Split(fullName, "/job/")
	}
	for _, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		p.segments = append(p.segments, "job", url.PathEscape(seg))
	}
	return p
}

// API appends the JSON API suffix.
func (p *JobPathBuilder) API() *JobPathBuilder {
	p.segments = append(p.segments, "api", "json")
	return p
}

// Action appends a trailing action such as "build" or
// "buildWithParameters".
func (p *JobPathBuilder) Action(action string) *JobPathBuilder {
	p.segments = append(p.segments, action)
	return p
}

func (p *JobPathBuilder) Build() string {
	return strings.Join(p.segments, "/")
}
