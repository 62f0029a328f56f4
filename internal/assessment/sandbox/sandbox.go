// Package sandbox executes untrusted code submissions under a resource
// envelope.
//
// Lua runs natively on an embedded VM. Each execution gets a fresh state
// with the filesystem and loader surface removed, a bounded output buffer,
// and a count debug hook that aborts the VM cooperatively when the wall
// clock deadline, the context, or the memory ceiling is exceeded. Other
// languages classify as execution errors.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/Shopify/go-lua"

	"github.com/louisbranch/praxis/internal/assessment/domain"
)

var (
	// ErrInvalidTimeout indicates a non-positive timeout configuration.
	ErrInvalidTimeout = errors.New("sandbox timeout must be greater than zero")
	// ErrInvalidMemoryLimit indicates a non-positive memory limit.
	ErrInvalidMemoryLimit = errors.New("sandbox memory limit must be greater than zero")
)

const (
	// DefaultTimeout bounds one execution's wall-clock time.
	DefaultTimeout = 5000 * time.Millisecond
	// DefaultMemoryLimitBytes bounds one execution's observed heap growth.
	DefaultMemoryLimitBytes = 64 * 1024 * 1024
	// DefaultMaxOutputBytes bounds captured output; excess is discarded.
	DefaultMaxOutputBytes = 1024 * 1024
	// DefaultHookInterval is the instruction count between limit checks.
	DefaultHookInterval = 10000

	// memoryCheckEvery spaces out heap sampling; reading memory stats on
	// every hook call would dominate the run.
	memoryCheckEvery = 16
)

// Abort markers raised from the debug hook and classified after the VM
// unwinds.
const (
	markerTimeout  = "praxis: execution deadline exceeded"
	markerMemory   = "praxis: memory limit exceeded"
	markerCanceled = "praxis: execution canceled"
)

// Config is the resource envelope for one sandbox.
type Config struct {
	Timeout          time.Duration `env:"PRAXIS_SANDBOX_TIMEOUT" envDefault:"5s"`
	MemoryLimitBytes int64         `env:"PRAXIS_SANDBOX_MEMORY_LIMIT_BYTES" envDefault:"67108864"`
	MaxOutputBytes   int           `env:"PRAXIS_SANDBOX_MAX_OUTPUT_BYTES" envDefault:"1048576"`
	HookInterval     int           `env:"PRAXIS_SANDBOX_HOOK_INTERVAL" envDefault:"10000"`
}

// DefaultConfig returns the default resource envelope.
func DefaultConfig() Config {
	return Config{
		Timeout:          DefaultTimeout,
		MemoryLimitBytes: DefaultMemoryLimitBytes,
		MaxOutputBytes:   DefaultMaxOutputBytes,
		HookInterval:     DefaultHookInterval,
	}
}

// Sandbox executes submissions. It is stateless across executions and safe
// for concurrent use; every Execute builds a fresh VM.
type Sandbox struct {
	config Config
}

// New builds a sandbox, failing eagerly on an unusable envelope.
func New(config Config) (*Sandbox, error) {
	if config.Timeout <= 0 {
		return nil, ErrInvalidTimeout
	}
	if config.MemoryLimitBytes <= 0 {
		return nil, ErrInvalidMemoryLimit
	}
	if config.MaxOutputBytes <= 0 {
		config.MaxOutputBytes = DefaultMaxOutputBytes
	}
	if config.HookInterval <= 0 {
		config.HookInterval = DefaultHookInterval
	}
	return &Sandbox{config: config}, nil
}

// Config returns the sandbox's resource envelope.
func (s *Sandbox) Config() Config { return s.config }

// Execute runs source under the resource envelope and classifies the
// outcome. input is exposed to the program line by line through read().
// Nothing escapes: faults, limit hits, and VM panics all come back as
// ExecutionResults.
func (s *Sandbox) Execute(ctx context.Context, source string, language domain.Language, input string) domain.ExecutionResult {
	if language != domain.LanguageLua {
		return domain.NewExecutionError(fmt.Sprintf("language %s is not supported for execution", language.Name()))
	}
	return s.executeLua(ctx, source, input)
}

// ExecuteSubmission runs a lab submission with a per-call timeout override.
// A zero override keeps the configured timeout; a larger one is clamped to
// it so a test case can only tighten the envelope.
func (s *Sandbox) ExecuteSubmission(ctx context.Context, submission domain.Submission, input string, timeout time.Duration) domain.ExecutionResult {
	if timeout > 0 && timeout < s.config.Timeout {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.Execute(ctx, submission.Source, submission.Language, input)
}

func (s *Sandbox) executeLua(ctx context.Context, source, input string) (result domain.ExecutionResult) {
	started := time.Now()
	deadline := started.Add(s.config.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	output := &outputBuffer{limit: s.config.MaxOutputBytes}

	// The VM panics on unprotected errors and the hook aborts with raised
	// errors; nothing may escape to the caller.
	defer func() {
		if recovered := recover(); recovered != nil {
			result = classifyAbort(fmt.Sprint(recovered), output.String(), 0)
		}
	}()

	l := lua.NewState()
	lua.OpenLibraries(l)
	restrict(l)
	registerHostFunctions(l, output, input)

	var baseline runtime.MemStats
	runtime.ReadMemStats(&baseline)
	var usedBytes int64
	hookCalls := 0

	hook := func(state *lua.State, _ lua.Debug) {
		if time.Now().After(deadline) {
			lua.Errorf(state, "%s", markerTimeout)
		}
		if err := ctx.Err(); err != nil {
			lua.Errorf(state, "%s", markerCanceled)
		}
		hookCalls++
		if hookCalls%memoryCheckEvery == 0 {
			var current runtime.MemStats
			runtime.ReadMemStats(&current)
			if growth := int64(current.HeapAlloc) - int64(baseline.HeapAlloc); growth > s.config.MemoryLimitBytes {
				usedBytes = growth
				lua.Errorf(state, "%s", markerMemory)
			}
		}
	}
	lua.SetDebugHook(l, hook, lua.MaskCount, s.config.HookInterval)

	if err := lua.LoadString(l, source); err != nil {
		message := luaMessage(l, err)
		return domain.NewRuntimeError(message, parseLine(message))
	}

	if err := l.ProtectedCall(0, 0, 0); err != nil {
		message := luaMessage(l, err)
		return classifyAbort(message, output.String(), usedBytes)
	}

	return domain.NewSuccess(output.String(), time.Since(started))
}

// restrict removes the filesystem, OS, and loader surface from the VM.
// Submissions get computation and string/table/math primitives only.
func restrict(l *lua.State) {
	for _, name := range []string{"io", "os", "package", "debug", "require", "dofile", "loadfile", "load", "loadstring"} {
		l.PushNil()
		l.SetGlobal(name)
	}
}

func registerHostFunctions(l *lua.State, output *outputBuffer, input string) {
	l.Register("print", func(state *lua.State) int {
		top := state.Top()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			value, _ := lua.ToStringMeta(state, i)
			parts = append(parts, value)
		}
		output.WriteLine(strings.Join(parts, "\t"))
		return 0
	})

	lines := strings.Split(input, "\n")
	next := 0
	l.Register("read", func(state *lua.State) int {
		if input == "" || next >= len(lines) {
			state.PushNil()
			return 1
		}
		state.PushString(lines[next])
		next++
		return 1
	})
}

// classifyAbort maps an unwound VM error to its result. Limit markers win
// over the raw diagnostic text.
func classifyAbort(message, partialOutput string, usedBytes int64) domain.ExecutionResult {
	switch {
	case strings.Contains(message, markerTimeout), strings.Contains(message, markerCanceled):
		return domain.NewTimeout(partialOutput)
	case strings.Contains(message, markerMemory):
		return domain.NewMemoryExceeded(usedBytes)
	default:
		return domain.NewRuntimeError(message, parseLine(message))
	}
}

// luaMessage prefers the error value left on the stack, which carries the
// chunk:line prefix, over the Go-side error string.
func luaMessage(l *lua.State, err error) string {
	if l.Top() > 0 {
		if message, ok := l.ToString(l.Top()); ok && message != "" {
			l.Pop(1)
			return message
		}
		l.Pop(1)
	}
	return err.Error()
}

// parseLine extracts the 1-based source line from a Lua diagnostic of the
// form `[string "..."]:N: message`. Zero means unknown.
func parseLine(message string) int {
	idx := strings.Index(message, "]:")
	if idx == -1 {
		return 0
	}
	rest := message[idx+2:]
	end := strings.Index(rest, ":")
	if end == -1 {
		return 0
	}
	line, err := strconv.Atoi(rest[:end])
	if err != nil || line <= 0 {
		return 0
	}
	return line
}

// outputBuffer captures print output up to a byte limit. Excess writes are
// discarded so a print loop cannot exhaust host memory.
type outputBuffer struct {
	limit int
	b     strings.Builder
}

func (o *outputBuffer) WriteLine(line string) {
	if o.b.Len() >= o.limit {
		return
	}
	remaining := o.limit - o.b.Len()
	text := line + "\n"
	if len(text) > remaining {
		text = text[:remaining]
	}
	o.b.WriteString(text)
}

func (o *outputBuffer) String() string { return o.b.String() }
