package eval

// State is the bitflag set threaded through eval alongside the pipe slot
// (spec §4.D): it is cheaper to pass than a dozen booleans and mirrors how
// the teacher's machine package threads per-frame execution flags.
type State uint32

const (
	// InPipe marks a subexpression evaluated as the left/right side of a
	// pipeline stage, or as a Declare initializer that should capture an
	// external command's stdout (spec §4.D, §4.F).
	InPipe State = 1 << iota
	// SkipBuiltinSeek suppresses the built-in-registry-first lookup order for
	// bare Symbols, used for the rhs of Index so member names like "log" do
	// not resolve to a built-in of the same name (spec §4.D).
	SkipBuiltinSeek
	// InAssign marks evaluation performed as the right-hand side of an
	// Assign/Declare/CompoundAssign, reserved for diagnostics.
	InAssign
	// InDecor marks evaluation happening inside a decorator's wrapping call;
	// a named function called under it runs its body in the calling scope
	// rather than forking a fresh one (spec §4.E.2).
	InDecor
)

func (s State) has(f State) bool    { return s&f != 0 }
func (s State) with(f State) State  { return s | f }
func (s State) clear(f State) State { return s &^ f }
