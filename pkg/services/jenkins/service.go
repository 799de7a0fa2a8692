// Package jenkins implements the build client against the Jenkins
// remote access API.
package jenkins

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v3"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
	"github.com/cronforge/jenkins-scheduler/internal/common/logger"
	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
	"github.com/cronforge/jenkins-scheduler/pkg/services/library"
)

// folderClass is the type tag Jenkins puts on folder containers in
// listing responses.
const folderClass = "com.cloudbees.hudson.plugins.folder.Folder"

type Service struct {
	baseURL    string
	username   string
	token      string
	httpClient *http.Client

	retryMode    core.RetryMode
	retryMaxTime time.Duration

	log *logger.Logger
}

func New(server *payloads.BuildServer, retryMode core.RetryMode, retryMaxTime time.Duration, log *logger.Logger) library.BuildClient {
	return &Service{
		baseURL:  strings.TrimRight(server.URL, "/"),
		username: server.Username,
		token:    server.Token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retryMode:    retryMode,
		retryMaxTime: retryMaxTime,
		log:          log.With(zap.String("jenkins", server.Name)),
	}
}

func (s *Service) setAuth(req *http.Request) {
	if s.username != "" && s.token != "" {
		req.SetBasicAuth(s.username, s.token)
	}
}

// statusError maps a non-2xx response to the upstream taxonomy.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("jenkins returned %s: %w", resp.Status, core.ErrAuthenticationFailed)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("jenkins returned %s: %w", resp.Status, core.ErrNotFound)
	case resp.StatusCode >= 500:
		return fmt.Errorf("jenkins returned %s: %w", resp.Status, core.ErrUpstreamUnavailable)
	default:
		return fmt.Errorf("jenkins returned unexpected status %s", resp.Status)
	}
}

// doRequest issues the request built by build, retrying transient
// failures (network errors and 5xx) with exponential backoff when
// retries are enabled. Authentication and not-found failures are
// permanent and never retried.
func (s *Service) doRequest(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	attempt := func() (*http.Response, error) {
		req, err := build()
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		s.setAuth(req)

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, core.ErrUpstreamUnavailable)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			err := statusError(resp)
			_ = resp.Body.Close()
			if errors.Is(err, core.ErrUpstreamUnavailable) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}

		return resp, nil
	}

	if s.retryMode != core.Backoff {
		resp, err := attempt()
		if err != nil {
			var perm *backoff.PermanentError
			if errors.As(err, &perm) {
				return nil, perm.Err
			}
			return nil, err
		}
		return resp, nil
	}

	var resp *http.Response
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = s.retryMaxTime

	err := backoff.Retry(func() error {
		r, err := attempt()
		if err != nil {
			return err
		}
		resp = r
		return nil
	}, backoff.WithContext(policy, ctx))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) getJSON(ctx context.Context, endpoint string, dst any) error {
	resp, err := s.doRequest(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+endpoint, nil)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.ErrFailedToReadBody.WithArgs(err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return core.ErrFailedToDecodeBody.WithArgs(err)
	}
	return nil
}

type listItem struct {
	Class string `json:"_class"`
	Name  string `json:"name"`
}

type listResponse struct {
	Jobs []listItem `json:"jobs"`
}

// ListJobs walks folders depth-first and returns leaf jobs with their
// traversal-form full path. Cyclic folder structures are not guarded
// against; the server does not produce them.
func (s *Service) ListJobs(ctx context.Context) ([]payloads.JenkinsJob, error) {
	return s.listJobs(ctx, "")
}

func (s *Service) listJobs(ctx context.Context, folderPath string) ([]payloads.JenkinsJob, error) {
	endpoint := "api/json"
	if folderPath != "" {
		endpoint = core.NewJobPathBuilder().Job(folderPath).API().Build()
	}

	var listing listResponse
	if err := s.getJSON(ctx, endpoint, &listing); err != nil {
		return nil, fmt.Errorf("failed to list jobs under %q: %w", folderPath, err)
	}

	var jobs []payloads.JenkinsJob
	for _, item := range listing.Jobs {
		fullPath := item.Name
		displayName := item.Name
		if folderPath != "" {
			fullPath = folderPath + "/job/" + item.Name
			displayName = strings.ReplaceAll(folderPath, "/job/", "/") + "/" + item.Name
		}

		if item.Class == folderClass {
			children, err := s.listJobs(ctx, fullPath)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, children...)
			continue
		}

		jobs = append(jobs, payloads.JenkinsJob{
			FullPath:    fullPath,
			DisplayName: displayName,
			Kind:        shortClass(item.Class),
		})
	}

	return jobs, nil
}

func shortClass(class string) string {
	if i := strings.LastIndex(class, "."); i >= 0 {
		return class[i+1:]
	}
	return class
}

// jobConfig is the subset of a job's api/json document the client
// cares about.
type jobConfig struct {
	Property []map[string]any `json:"property"`
	SCM      struct {
		Branches []struct {
			Name string `json:"name"`
		} `json:"branches"`
	} `json:"scm"`
}

func (s *Service) getJobConfig(ctx context.Context, target string) (*jobConfig, error) {
	endpoint := core.NewJobPathBuilder().Job(target).API().Build()

	var cfg jobConfig
	if err := s.getJSON(ctx, endpoint, &cfg); err != nil {
		return nil, fmt.Errorf("failed to fetch config for %q: %w", target, err)
	}
	return &cfg, nil
}

// rawParameterDefinition is the loose shape Jenkins uses for a
// parameter definition; concrete fields vary per parameter class.
type rawParameterDefinition struct {
	Class                 string `mapstructure:"_class"`
	Name                  string `mapstructure:"name"`
	Type                  string `mapstructure:"type"`
	Description           string `mapstructure:"description"`
	DefaultParameterValue struct {
		Value any `mapstructure:"value"`
	} `mapstructure:"defaultParameterValue"`
	Choices []any `mapstructure:"choices"`
}

func (s *Service) GetParameterDefinitions(ctx context.Context, target string) ([]payloads.ParameterDefinition, error) {
	cfg, err := s.getJobConfig(ctx, target)
	if err != nil {
		return nil, err
	}

	var defs []payloads.ParameterDefinition
	for _, prop := range cfg.Property {
		if prop["_class"] != "hudson.model.ParametersDefinitionProperty" {
			continue
		}

		rawDefs, ok := prop["parameterDefinitions"].([]any)
		if !ok {
			continue
		}

		for _, rawDef := range rawDefs {
			var raw rawParameterDefinition
			if err := mapstructure.Decode(rawDef, &raw); err != nil {
				s.log.Warn("Skipping undecodable parameter definition",
					zap.String("target", target), zap.Error(err))
				continue
			}

			def := payloads.ParameterDefinition{
				Name:        raw.Name,
				Kind:        parameterKind(raw),
				Description: raw.Description,
				Default:     raw.DefaultParameterValue.Value,
			}
			for _, choice := range raw.Choices {
				def.Choices = append(def.Choices, fmt.Sprint(choice))
			}
			defs = append(defs, def)
		}
	}

	return defs, nil
}

// parameterKind maps the upstream class/type tags onto the closed
// kind set. New kinds are added here, not matched ad hoc elsewhere.
func parameterKind(raw rawParameterDefinition) payloads.ParameterKind {
	switch {
	case strings.Contains(raw.Class, "StringParameterDefinition"):
		return payloads.ParameterString
	case strings.Contains(raw.Class, "TextParameterDefinition"):
		return payloads.ParameterText
	case strings.Contains(raw.Class, "ChoiceParameterDefinition"):
		return payloads.ParameterChoice
	case strings.Contains(raw.Class, "BooleanParameterDefinition"):
		return payloads.ParameterBoolean
	case strings.Contains(raw.Class, "GitParameterDefinition"), raw.Type == "PT_BRANCH", raw.Type == "PT_TAG":
		return payloads.ParameterGitRef
	default:
		return payloads.ParameterOther
	}
}

func (s *Service) GetGitBranches(ctx context.Context, target string) ([]string, error) {
	cfg, err := s.getJobConfig(ctx, target)
	if err != nil {
		return nil, err
	}

	branches := make([]string, 0, len(cfg.SCM.Branches))
	for _, branch := range cfg.SCM.Branches {
		branches = append(branches, branch.Name)
	}
	return branches, nil
}

// crumb is the CSRF protection token some Jenkins servers require on
// POSTs.
type crumb struct {
	Crumb             string `json:"crumb"`
	CrumbRequestField string `json:"crumbRequestField"`
}

// fetchCrumb asks the crumb issuer for a CSRF token. Servers with
// CSRF protection disabled have no issuer; that is tolerated and the
// trigger proceeds without a crumb.
func (s *Service) fetchCrumb(ctx context.Context) (field, value string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/crumbIssuer/api/json", nil)
	if err != nil {
		return "", ""
	}
	s.setAuth(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Debug("CSRF crumb unavailable, continuing", zap.Error(err))
		return "", ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Debug("CSRF crumb unavailable, continuing", zap.String("status", resp.Status))
		return "", ""
	}

	var c crumb
	if err := json.NewDecoder(resp.Body).Decode(&c); err != nil || c.Crumb == "" {
		return "", ""
	}
	return c.CrumbRequestField, c.Crumb
}

func (s *Service) TriggerBuild(ctx context.Context, target string, params payloads.Parameters) (string, error) {
	form := url.Values{}
	for name, value := range params {
		if value == nil {
			// Absent value: let the target's default apply.
			continue
		}
		form.Set(name, fmt.Sprint(value))
	}

	// Parameterless jobs reject buildWithParameters and vice versa;
	// the endpoint must match the payload.
	action := "build"
	if len(form) > 0 {
		action = "buildWithParameters"
	}
	endpoint := core.NewJobPathBuilder().Job(target).Action(action).Build()

	crumbField, crumbValue := s.fetchCrumb(ctx)

	body := form.Encode()
	resp, err := s.doRequest(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/"+endpoint, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if crumbField != "" {
			req.Header.Set(crumbField, crumbValue)
		}
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to trigger %q: %w", target, err)
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	s.log.Debug("Build queued",
		zap.String("target", target), zap.String("queueLocation", location))
	return location, nil
}
