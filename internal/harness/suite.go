package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Suite is a batch of independent validation cases loaded from a YAML
// file. Cases share nothing at runtime: each gets its own interpreter.
type Suite struct {
	// Name identifies the suite in output and run records.
	Name string `yaml:"name"`

	// Validator is the path to the shared validator source, relative to
	// the suite file. Individual cases may override it.
	Validator string `yaml:"validator,omitempty"`

	// Cases are the (input, output) pairs to validate.
	Cases []Case `yaml:"cases"`
}

// Case is one (validator, input, output) run with an optional expected
// verdict.
type Case struct {
	Name string `yaml:"name"`

	// Validator overrides the suite-level validator path.
	Validator string `yaml:"validator,omitempty"`

	// Input/Output carry the texts inline; InputFile/OutputFile load them
	// from files relative to the suite file. File wins when both are set.
	Input      string `yaml:"input,omitempty"`
	InputFile  string `yaml:"input_file,omitempty"`
	Output     string `yaml:"output,omitempty"`
	OutputFile string `yaml:"output_file,omitempty"`

	// ExpectSatisfied, when set, turns the case into an assertion: the
	// case passes only if the verdict matches.
	ExpectSatisfied *bool `yaml:"expect_satisfied,omitempty"`
}

// CaseResult is the outcome of one suite case.
type CaseResult struct {
	Name    string        `json:"name"`
	Verdict *Verdict      `json:"verdict,omitempty"`
	Err     error         `json:"-"`
	ErrText string        `json:"error,omitempty"`
	Passed  bool          `json:"passed"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// LoadSuite reads a suite file and resolves its relative paths.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse suite file: %w", err)
	}
	if len(suite.Cases) == 0 {
		return nil, fmt.Errorf("suite %s defines no cases", path)
	}

	base := filepath.Dir(path)
	suite.Validator = resolvePath(base, suite.Validator)
	for i := range suite.Cases {
		c := &suite.Cases[i]
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		c.Validator = resolvePath(base, c.Validator)
		c.InputFile = resolvePath(base, c.InputFile)
		c.OutputFile = resolvePath(base, c.OutputFile)
	}
	return &suite, nil
}

// RunSuite executes all cases across at most workers concurrent runs.
// Each case gets a fresh, isolated interpreter; no case observes state
// left by another. Results keep suite order regardless of completion
// order.
//
// Case failures (unsatisfied verdicts, contract errors, unmet
// expectations) do not stop the batch; only context cancellation does.
func (r *Runner) RunSuite(ctx context.Context, suite *Suite, workers int) ([]CaseResult, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]CaseResult, len(suite.Cases))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range suite.Cases {
		g.Go(func() error {
			results[i] = r.runCase(gctx, suite, &suite.Cases[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runCase(ctx context.Context, suite *Suite, c *Case) CaseResult {
	res := CaseResult{Name: c.Name}
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	validatorPath := c.Validator
	if validatorPath == "" {
		validatorPath = suite.Validator
	}
	if validatorPath == "" {
		res.Err = fmt.Errorf("case %s: no validator specified", c.Name)
		res.ErrText = res.Err.Error()
		return res
	}
	source, err := os.ReadFile(validatorPath)
	if err != nil {
		res.Err = fmt.Errorf("case %s: %w", c.Name, err)
		res.ErrText = res.Err.Error()
		return res
	}

	input, err := caseText(c.Input, c.InputFile)
	if err == nil {
		var output string
		output, err = caseText(c.Output, c.OutputFile)
		if err == nil {
			res.Verdict, err = r.Run(ctx, string(source), input, output)
		}
	}
	if err != nil {
		res.Err = err
		res.ErrText = err.Error()
		return res
	}

	if c.ExpectSatisfied != nil {
		res.Passed = res.Verdict.Satisfied == *c.ExpectSatisfied
	} else {
		res.Passed = res.Verdict.Satisfied
	}
	return res
}

func caseText(inline, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return inline, nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
