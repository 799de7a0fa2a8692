package scheduler

import (
	"fmt"
	"strings"

	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
)

// Reconcile folds per-target trigger outcomes into one execution
// result. All targets succeeding is success, none is failed, a mix is
// partial_success. An attempt with no targets at all is failed; it
// queued nothing.
func Reconcile(targets []payloads.TargetResult) *payloads.ExecutionResult {
	result := &payloads.ExecutionResult{Targets: targets}

	for _, t := range targets {
		if t.Success {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
	}

	switch {
	case len(targets) == 0:
		result.Status = payloads.ExecutionFailed
	case result.FailureCount == 0:
		result.Status = payloads.ExecutionSuccess
	case result.SuccessCount == 0:
		result.Status = payloads.ExecutionFailed
	default:
		result.Status = payloads.ExecutionPartialSuccess
	}

	return result
}

// Summarize renders the result as the history row's log output: an
// aggregate count line followed by one line per failed target.
func Summarize(result *payloads.ExecutionResult) string {
	if len(result.Targets) == 0 {
		return "no targets to trigger"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d targets triggered successfully",
		result.SuccessCount, len(result.Targets))

	for _, t := range result.Targets {
		if !t.Success {
			fmt.Fprintf(&b, "\n%s: %s", t.Target, t.Error)
		}
	}

	return b.String()
}
