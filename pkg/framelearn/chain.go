package framelearn

import (
	"fmt"
	"strconv"

	"github.com/wdm0006/framelearn/pkg/frame"
)

// Step is anything that fits on and transforms frames: an Adapter, a
// Trans, a Chain or a Union.
type Step interface {
	Fit(x *frame.Frame, y *frame.Series) error
	Transform(x *frame.Frame) (*frame.Frame, error)
	FitTransform(x *frame.Frame, y *frame.Series) (*frame.Frame, error)
}

// Estimator is a Step that also predicts.
type Estimator interface {
	Step
	Predict(x *frame.Frame) (*frame.Series, error)
}

// Chain runs steps in order, each consuming the previous step's output.
// It holds no state of its own.
type Chain struct {
	steps []Step
}

// NewChain builds a chain from steps as given; nested chains are kept.
func NewChain(steps ...Step) (*Chain, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyChain
	}
	for i, s := range steps {
		if s == nil {
			return nil, fmt.Errorf("chain: step %d is nil", i)
		}
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return &Chain{steps: out}, nil
}

// Pipe chains a, b and more in order. Operands that are chains are spliced
// in, so the result is always flat.
func Pipe(a, b Step, more ...Step) *Chain {
	var steps []Step
	for _, s := range append([]Step{a, b}, more...) {
		switch v := s.(type) {
		case nil:
			panic("framelearn: Pipe of nil step")
		case *Chain:
			steps = append(steps, v.steps...)
		default:
			steps = append(steps, s)
		}
	}
	return &Chain{steps: steps}
}

// Steps returns a copy of the chain's steps.
func (c *Chain) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

func (c *Chain) Len() int { return len(c.steps) }

// Fit fit-transforms x through every step but the last and fits the last
// step on the result.
func (c *Chain) Fit(x *frame.Frame, y *frame.Series) error {
	if len(c.steps) == 0 {
		return ErrEmptyChain
	}
	last := len(c.steps) - 1
	cur, err := c.fitThrough(x, y, last)
	if err != nil {
		return err
	}
	if err := c.steps[last].Fit(cur, y); err != nil {
		return fmt.Errorf("chain step %d: %w", last, err)
	}
	return nil
}

func (c *Chain) FitTransform(x *frame.Frame, y *frame.Series) (*frame.Frame, error) {
	if len(c.steps) == 0 {
		return nil, ErrEmptyChain
	}
	return c.fitThrough(x, y, len(c.steps))
}

func (c *Chain) Transform(x *frame.Frame) (*frame.Frame, error) {
	if len(c.steps) == 0 {
		return nil, ErrEmptyChain
	}
	return c.transformThrough(x, len(c.steps))
}

// Predict transforms x through every step but the last and predicts with
// the last step.
func (c *Chain) Predict(x *frame.Frame) (*frame.Series, error) {
	if len(c.steps) == 0 {
		return nil, ErrEmptyChain
	}
	last := len(c.steps) - 1
	est, ok := c.steps[last].(Estimator)
	if !ok {
		return nil, fmt.Errorf("chain step %d (%T): %w", last, c.steps[last], ErrNotPredictor)
	}
	cur, err := c.transformThrough(x, last)
	if err != nil {
		return nil, err
	}
	out, err := est.Predict(cur)
	if err != nil {
		return nil, fmt.Errorf("chain step %d: %w", last, err)
	}
	return out, nil
}

// GetParams flattens every step's params under "<position>__<param>".
func (c *Chain) GetParams() map[string]any {
	out := map[string]any{}
	for i, s := range c.steps {
		nestParams(out, strconv.Itoa(i), s)
	}
	return out
}

// SetParams routes "<position>__<param>" keys to the matching step. Every
// step is resolved before any params are applied, and steps are set in
// order.
func (c *Chain) SetParams(params map[string]any) error {
	byStep, err := splitParams(params)
	if err != nil {
		return err
	}
	ordered := make([]map[string]any, len(c.steps))
	for name, p := range byStep {
		pos, err := strconv.Atoi(name)
		if err != nil || pos < 0 || pos >= len(c.steps) || strconv.Itoa(pos) != name {
			return fmt.Errorf("chain: %w: no step %q", ErrUnknownParam, name)
		}
		if !settable(c.steps[pos]) {
			return fmt.Errorf("chain step %d: %T: %w", pos, c.steps[pos], ErrNoParams)
		}
		ordered[pos] = p
	}
	for pos, p := range ordered {
		if p == nil {
			continue
		}
		if err := setParams(c.steps[pos], p); err != nil {
			return fmt.Errorf("chain step %d: %w", pos, err)
		}
	}
	return nil
}

// EstimatorKind is the kind of the last step, or KindUnknown for an empty
// chain.
func (c *Chain) EstimatorKind() EstimatorKind {
	if len(c.steps) == 0 {
		return KindUnknown
	}
	return KindOf(c.steps[len(c.steps)-1])
}

func (c *Chain) Pipe(next Step, more ...Step) *Chain { return Pipe(c, next, more...) }
func (c *Chain) Add(other Step, more ...Step) *Union { return Add(c, other, more...) }

func (c *Chain) fitThrough(x *frame.Frame, y *frame.Series, n int) (*frame.Frame, error) {
	cur := x
	for i := 0; i < n; i++ {
		out, err := c.steps[i].FitTransform(cur, y)
		if err != nil {
			return nil, fmt.Errorf("chain step %d: %w", i, err)
		}
		cur = out
	}
	return cur, nil
}

func (c *Chain) transformThrough(x *frame.Frame, n int) (*frame.Frame, error) {
	cur := x
	for i := 0; i < n; i++ {
		out, err := c.steps[i].Transform(cur)
		if err != nil {
			return nil, fmt.Errorf("chain step %d: %w", i, err)
		}
		cur = out
	}
	return cur, nil
}
