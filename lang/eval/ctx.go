package eval

import "github.com/lumesh-lang/lumesh/lang/value"

// maxDepth is the AST-descent / call-stack recursion bound spec §4.D and §5
// call for; exceeding it raises RecursionDepth rather than overflowing the
// host's Go stack.
const maxDepth = 800

// maxApplyDepth additionally bounds call-dispatch recursion (spec §5), to
// catch pathological decorator chains before they exhaust maxDepth.
const maxApplyDepth = 400

// ctx carries the per-evaluation state that spec §4.D calls the State
// bitflag set plus the pipe slot, the module lookup domain stack of §4.E.1,
// and the shared depth counters. It is copied (not pointer-shared) across
// sibling evaluations so that each subexpression's pipe-slot/domain view is
// independent, except for depth, which lives behind a pointer shared by the
// whole evaluation so the bound is enforced across the real call stack.
type ctx struct {
	state State

	pipeSlot    value.Value
	hasPipeSlot bool

	domain []string

	depth      *int
	applyDepth *int
}

func newCtx() ctx {
	d, a := 0, 0
	return ctx{depth: &d, applyDepth: &a}
}

func (c ctx) withState(f State) ctx {
	c.state = c.state.with(f)
	return c
}

func (c ctx) withoutState(f State) ctx {
	c.state = c.state.clear(f)
	return c
}

func (c ctx) withPipeSlot(v value.Value) ctx {
	c.pipeSlot, c.hasPipeSlot = v, true
	return c
}

func (c ctx) clearPipeSlot() ctx {
	c.pipeSlot, c.hasPipeSlot = nil, false
	return c
}

func (c ctx) pushDomain(path []string) ctx {
	d := make([]string, len(c.domain)+len(path))
	copy(d, c.domain)
	copy(d[len(c.domain):], path)
	c.domain = d
	return c
}
