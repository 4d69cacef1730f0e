package harness

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"reflect"
	"regexp"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// EntryPoint is the fixed, well-known name the validator source must
// define: func IsValidOutput(output, input string) (bool, string, string).
const EntryPoint = "IsValidOutput"

// DefaultTimeout is the wall-clock execution budget per invocation.
// Pathological or adversarial validator code is cut off at this bound and
// reported as an EXECUTION_TIMEOUT contract error.
const DefaultTimeout = 5 * time.Second

// allowedImports is the stdlib subset validator sources may use.
// Interpreted code gets no filesystem, network, or process access.
var allowedImports = map[string]bool{
	"strings":       true,
	"strconv":       true,
	"fmt":           true,
	"math":          true,
	"regexp":        true,
	"encoding/json": true,
	"sort":          true,
	"unicode":       true,
	"unicode/utf8":  true,
}

// packageClause locates the package name of the validator source.
var packageClause = regexp.MustCompile(`(?m)^\s*package\s+([A-Za-z_]\w*)`)

// Options configures a Runner.
type Options struct {
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration

	// Logger receives harness-level diagnostics. Contract errors are
	// logged here so they stay distinguishable from validation failures.
	// Defaults to a discard logger.
	Logger *slog.Logger
}

// Runner executes validator sources under the fixed contract.
// A Runner is stateless across calls: each Run gets a fresh interpreter.
type Runner struct {
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Runner with the given options.
func New(opts Options) *Runner {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{timeout: timeout, logger: logger}
}

// Run loads the validator source into a fresh, isolated interpreter and
// invokes the entry point as (output, input).
//
// Exactly one of the return values is non-nil: a Verdict when the
// validator executed under the contract (whatever it decided), or a
// ContractError when it could not be executed as specified.
//
// A passing return discards any reason/violation the validator supplied;
// a failing return carries them verbatim (empty string = absent).
func (r *Runner) Run(ctx context.Context, source, input, output string) (*Verdict, error) {
	fn, err := r.load(source)
	if err != nil {
		r.logger.Error("validator load failed", "code", ContractCode(err), "error", err)
		return nil, err
	}

	passed, reason, violation, err := r.invoke(ctx, fn, input, output)
	if err != nil {
		r.logger.Error("validator invocation failed", "code", ContractCode(err), "error", err)
		return nil, err
	}

	if passed {
		// Enforce the verdict invariant regardless of what the validator
		// returned alongside true.
		return SatisfiedVerdict(), nil
	}
	return UnsatisfiedVerdict(reason, violation), nil
}

// load evaluates the source in a fresh interpreter and resolves the entry
// point, enforcing the contract shape by reflection.
func (r *Runner) load(source string) (reflect.Value, error) {
	var zero reflect.Value

	pkg := "validator"
	if m := packageClause.FindStringSubmatch(source); m != nil {
		pkg = m[1]
	} else {
		source = "package validator\n\n" + source
	}

	if err := checkImports(source); err != nil {
		return zero, err
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return zero, newContractError(ErrCodeRuntimeFault, "failed to initialize interpreter", err)
	}

	if _, err := i.Eval(source); err != nil {
		return zero, newContractError(ErrCodeRuntimeFault, "validator source failed to load", err)
	}

	sym, err := i.Eval(pkg + "." + EntryPoint)
	if err != nil {
		return zero, newContractError(ErrCodeMissingEntrypoint,
			fmt.Sprintf("validator does not define %s", EntryPoint), err)
	}

	if err := checkSignature(sym); err != nil {
		return zero, err
	}
	return sym, nil
}

// checkSignature verifies the entry point takes two strings and returns
// an ordered (bool, string, string) triple. Any other shape is a
// malformed contract, not a validation failure.
func checkSignature(fn reflect.Value) error {
	if fn.Kind() != reflect.Func {
		return newContractError(ErrCodeMalformedContract,
			fmt.Sprintf("%s is not a function", EntryPoint), nil)
	}
	t := fn.Type()
	if t.NumIn() != 2 || t.In(0).Kind() != reflect.String || t.In(1).Kind() != reflect.String {
		return newContractError(ErrCodeMalformedContract,
			fmt.Sprintf("%s must take (output, input string), has %d parameters", EntryPoint, t.NumIn()), nil)
	}
	if t.NumOut() != 3 {
		return newContractError(ErrCodeMalformedContract,
			fmt.Sprintf("%s must return exactly 3 values (bool, string, string), returns %d", EntryPoint, t.NumOut()), nil)
	}
	if t.Out(0).Kind() != reflect.Bool || t.Out(1).Kind() != reflect.String || t.Out(2).Kind() != reflect.String {
		return newContractError(ErrCodeMalformedContract,
			fmt.Sprintf("%s must return (bool, string, string)", EntryPoint), nil)
	}
	return nil
}

// invoke calls the entry point under the execution budget, capturing any
// fault as a RUNTIME_FAULT rather than letting it escape.
func (r *Runner) invoke(ctx context.Context, fn reflect.Value, input, output string) (passed bool, reason, violation string, err error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	type callResult struct {
		passed            bool
		reason, violation string
		err               error
	}
	done := make(chan callResult, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- callResult{err: newContractError(ErrCodeRuntimeFault,
					fmt.Sprintf("validator panicked: %v", rec), nil)}
			}
		}()
		out := fn.Call([]reflect.Value{reflect.ValueOf(output), reflect.ValueOf(input)})
		done <- callResult{
			passed:    out[0].Bool(),
			reason:    out[1].String(),
			violation: out[2].String(),
		}
	}()

	select {
	case res := <-done:
		return res.passed, res.reason, res.violation, res.err
	case <-ctx.Done():
		// The goroutine is abandoned; the budget bounds the caller, not
		// the interpreted code.
		return false, "", "", newContractError(ErrCodeTimeout,
			fmt.Sprintf("validator exceeded execution budget of %s", r.timeout), ctx.Err())
	}
}

// checkImports rejects validator sources importing outside the stdlib
// allowlist. Uses the Go parser so string literals in the body cannot be
// mistaken for imports.
func checkImports(source string) error {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "validator.go", source, parser.ImportsOnly)
	if err != nil {
		return newContractError(ErrCodeRuntimeFault, "validator source failed to parse", err)
	}
	for _, imp := range f.Imports {
		path := imp.Path.Value
		path = path[1 : len(path)-1] // unquote
		if !allowedImports[path] {
			return newContractError(ErrCodeRuntimeFault,
				fmt.Sprintf("validator imports forbidden package %q", path), nil)
		}
	}
	return nil
}
