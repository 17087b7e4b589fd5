package recipe

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/kbukum/xgen/errors"
	"github.com/kbukum/xgen/gen"
	"github.com/kbukum/xgen/instrument"
	"github.com/kbukum/xgen/logger"
	"github.com/kbukum/xgen/observability"
)

// Plan is a built, not yet run, pipeline.
type Plan struct {
	recipe  Recipe
	src     gen.Sequence[int]
	stages  gen.Stage[int, int]
	seq     gen.Sequence[int]
	log     *logger.Logger
	metrics *observability.PipelineMetrics
	out     io.Writer
}

// Outcome is the result of one run.
type Outcome struct {
	RunID     string
	Recipe    string
	Terminal  string
	Value     any
	Completed bool
}

// Option configures Build.
type Option func(*Plan)

// WithLogger logs every stage pass at debug level.
func WithLogger(l *logger.Logger) Option {
	return func(p *Plan) { p.log = l }
}

// WithMetrics counts elements after every stage.
func WithMetrics(m *observability.PipelineMetrics) Option {
	return func(p *Plan) { p.metrics = m }
}

// WithOutput sets where the print terminal writes. Default is stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Plan) { p.out = w }
}

// Build validates r and wires its source, stages and terminal into a plan.
// Nothing is traversed. A completing terminal on a pipeline that is still
// unbounded after its stages fails with INFINITE_SEQUENCE.
func Build(ctx context.Context, r Recipe, reg *Registry, opts ...Option) (*Plan, error) {
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	p := &Plan{recipe: r, out: os.Stdout}
	for _, opt := range opts {
		opt(p)
	}

	stages := make([]gen.Stage[int, int], 0, 2*len(r.Stages)+1)
	for i, spec := range r.Stages {
		entry, err := reg.Lookup(spec.Name)
		if err != nil {
			return nil, err
		}
		s, err := entry.Stage(spec.Arg)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
		stages = append(stages, p.observe(ctx, fmt.Sprintf("%d:%s", i, spec.Name))...)
	}
	if r.Limit > 0 {
		stages = append(stages, gen.Take[int](r.Limit))
	}

	p.src = source(r.Source)
	p.stages = gen.Chain(stages...)
	p.seq = gen.Pipe(p.src, p.stages)

	if Completing(r.Terminal) && p.seq.Infinite() {
		return nil, errors.InfiniteSequence(r.Terminal).
			WithDetail("recipe", r.Name).
			WithDetail("hint", "add a take stage or a limit")
	}
	return p, nil
}

func (p *Plan) observe(ctx context.Context, stage string) []gen.Stage[int, int] {
	var out []gen.Stage[int, int]
	if p.log != nil {
		out = append(out, instrument.Logged[int](p.log, stage))
	}
	if p.metrics != nil {
		out = append(out, instrument.Counted[int](ctx, p.metrics, p.recipe.Name, stage))
	}
	return out
}

func source(s Source) gen.Sequence[int] {
	switch s.Kind {
	case SourceRange:
		return gen.Range(s.Start, s.End, s.Step)
	case SourceValues:
		return gen.FromSlice(s.Values)
	case SourceCount:
		return gen.CountFrom(s.Start, s.Step)
	case SourceRepeat:
		if s.Times == 0 {
			return gen.Forever(s.Value)
		}
		return gen.Repeat(s.Value, s.Times)
	default:
		return gen.Empty[int]()
	}
}

// Sequence returns the wired sequence.
func (p *Plan) Sequence() gen.Sequence[int] { return p.seq }

// Recipe returns the recipe the plan was built from, with defaults applied.
func (p *Plan) Recipe() Recipe { return p.recipe }

// Run executes the plan once under a fresh run id. Plans are restartable:
// each Run is an independent pass over the source. The source is checked
// against ctx before every element, so cancelling ctx ends a run that would
// otherwise never finish; Run then returns the context error.
func (p *Plan) Run(ctx context.Context) (Outcome, error) {
	runID := uuid.NewString()
	out := Outcome{RunID: runID, Recipe: p.recipe.Name, Terminal: p.recipe.Terminal, Completed: true}
	rc := observability.NewRunContext(p.recipe.Name, runID, p.metrics)

	guard := gen.WithContext(ctx, p.src)
	seq := gen.Pipe[int, gen.Sequence[int]](guard, p.stages)

	var err error
	switch p.recipe.Terminal {
	case TerminalCollect:
		out.Value, err = runTerminal(ctx, rc, seq, guarded(guard, gen.Collect[int]()))
	case TerminalSum:
		out.Value, err = runTerminal(ctx, rc, seq, guarded(guard, gen.Sum[int]()))
	case TerminalCount:
		out.Value, err = runTerminal(ctx, rc, seq, guarded(guard, gen.Count[int]()))
	case TerminalMin:
		out.Value, err = runTerminal(ctx, rc, seq, guarded(guard, gen.Min[int]()))
	case TerminalMax:
		out.Value, err = runTerminal(ctx, rc, seq, guarded(guard, gen.Max[int]()))
	case TerminalFirst:
		out.Value, err = runTerminal(ctx, rc, seq, guarded(guard, gen.First[int]()))
	case TerminalPrint:
		w := p.out
		out.Completed, err = instrument.RunHandler(ctx, rc, seq, func(v int) {
			fmt.Fprintln(w, v)
		})
	default:
		err = errors.InvalidInput("terminal", "unknown terminal "+p.recipe.Terminal)
	}
	if cause := guard.Err(); cause != nil {
		out.Value, out.Completed, err = nil, false, cause
	}
	return out, err
}

// guarded reports the context error in place of whatever a terminal made
// of the partial pass.
func guarded[R any](guard *gen.Guarded[int], t gen.Terminal[int, R]) gen.Terminal[int, R] {
	return gen.OperatorFunc[gen.Sequence[int], gen.Result[R]](func(src gen.Sequence[int]) gen.Result[R] {
		res := t.Compose(src)
		if err := guard.Err(); err != nil {
			return gen.Result[R]{Err: err}
		}
		return res
	})
}

func runTerminal[R any](ctx context.Context, rc *observability.RunContext, seq gen.Sequence[int], t gen.Terminal[int, R]) (any, error) {
	v, err := instrument.RunTerminal(ctx, rc, seq, t)
	if err != nil {
		return nil, err
	}
	return v, nil
}
