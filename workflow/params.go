package workflow

import (
	"fmt"
	"strconv"
)

// ParamReader provides typed getters for safe access to map[string]any
// arguments arriving from the dispatch boundary.
type ParamReader struct {
	params map[string]any
}

// NewParamReader creates a ParamReader from an arguments map.
func NewParamReader(params map[string]any) *ParamReader {
	if params == nil {
		params = make(map[string]any)
	}
	return &ParamReader{params: params}
}

// String returns the string value for key, or defaultVal if not found or wrong type.
func (p *ParamReader) String(key, defaultVal string) string {
	v, ok := p.params[key]
	if !ok {
		return defaultVal
	}
	s, ok := v.(string)
	if !ok {
		return defaultVal
	}
	return s
}

// Bool returns the bool value for key, or defaultVal if not found or wrong type.
func (p *ParamReader) Bool(key string, defaultVal bool) bool {
	v, ok := p.params[key]
	if !ok {
		return defaultVal
	}
	b, ok := v.(bool)
	if !ok {
		return defaultVal
	}
	return b
}

// StringSlice returns the string slice for key, or nil if not found or wrong type.
// Handles []any (common from JSON unmarshaling) as well as []string.
func (p *ParamReader) StringSlice(key string) []string {
	v, ok := p.params[key]
	if !ok {
		return nil
	}
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Number returns a numeric value for key normalized to its decimal string
// form, or defaultVal if not found or wrong type. Handles string, int, and
// float64 (common from JSON unmarshaling).
func (p *ParamReader) Number(key, defaultVal string) string {
	v, ok := p.params[key]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case string:
		return n
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatInt(int64(n), 10)
	default:
		return defaultVal
	}
}

// CommitParams are the parameters for the git_commit_and_push operation.
type CommitParams struct {
	Files         []string
	CommitMessage string
	Branch        string
	WorkingDir    string
	DryRun        bool
}

// ParseCommitParams validates an arguments map into CommitParams.
func ParseCommitParams(args map[string]any) (CommitParams, error) {
	r := NewParamReader(args)
	p := CommitParams{
		Files:         r.StringSlice("files"),
		CommitMessage: r.String("commitMessage", ""),
		Branch:        r.String("branch", ""),
		WorkingDir:    r.String("workingDir", ""),
		DryRun:        r.Bool("dryRun", false),
	}
	if p.CommitMessage == "" {
		return p, fmt.Errorf("commitMessage is required")
	}
	return p, nil
}

// PullRequestParams are the parameters for the create_pull_request operation.
type PullRequestParams struct {
	Title      string
	Body       string
	BaseBranch string
	HeadBranch string
	WorkingDir string
	DryRun     bool
}

// ParsePullRequestParams validates an arguments map into PullRequestParams.
func ParsePullRequestParams(args map[string]any) (PullRequestParams, error) {
	r := NewParamReader(args)
	p := PullRequestParams{
		Title:      r.String("title", ""),
		Body:       r.String("body", ""),
		BaseBranch: r.String("baseBranch", ""),
		HeadBranch: r.String("headBranch", ""),
		WorkingDir: r.String("workingDir", ""),
		DryRun:     r.Bool("dryRun", false),
	}
	if p.Title == "" {
		return p, fmt.Errorf("title is required")
	}
	if p.Body == "" {
		return p, fmt.Errorf("body is required")
	}
	return p, nil
}

// MergeParams are the parameters for the merge_pull_request operation.
type MergeParams struct {
	PRNumber     string
	MergeMethod  string
	DeleteBranch bool
	WorkingDir   string
	DryRun       bool
}

// ParseMergeParams validates an arguments map into MergeParams.
func ParseMergeParams(args map[string]any) (MergeParams, error) {
	r := NewParamReader(args)
	p := MergeParams{
		PRNumber:     r.Number("prNumber", ""),
		MergeMethod:  r.String("mergeMethod", "merge"),
		DeleteBranch: r.Bool("deleteBranch", true),
		WorkingDir:   r.String("workingDir", ""),
		DryRun:       r.Bool("dryRun", false),
	}
	if p.PRNumber == "" {
		return p, fmt.Errorf("prNumber is required")
	}
	switch p.MergeMethod {
	case "merge", "squash", "rebase":
	default:
		return p, fmt.Errorf("mergeMethod must be one of merge, squash, rebase; got %q", p.MergeMethod)
	}
	return p, nil
}

// CompleteParams are the parameters for the complete_git_workflow operation.
type CompleteParams struct {
	Files         []string
	CommitMessage string
	Branch        string
	PRTitle       string
	PRBody        string
	BaseBranch    string
	AutoMerge     bool
	WorkingDir    string
	DryRun        bool
}

// ParseCompleteParams validates an arguments map into CompleteParams.
func ParseCompleteParams(args map[string]any) (CompleteParams, error) {
	r := NewParamReader(args)
	p := CompleteParams{
		Files:         r.StringSlice("files"),
		CommitMessage: r.String("commitMessage", ""),
		Branch:        r.String("branch", ""),
		PRTitle:       r.String("prTitle", ""),
		PRBody:        r.String("prBody", ""),
		BaseBranch:    r.String("baseBranch", ""),
		AutoMerge:     r.Bool("autoMerge", false),
		WorkingDir:    r.String("workingDir", ""),
		DryRun:        r.Bool("dryRun", false),
	}
	if p.CommitMessage == "" {
		return p, fmt.Errorf("commitMessage is required")
	}
	if p.PRTitle == "" {
		return p, fmt.Errorf("prTitle is required")
	}
	if p.PRBody == "" {
		return p, fmt.Errorf("prBody is required")
	}
	return p, nil
}
