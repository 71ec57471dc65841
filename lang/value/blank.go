package value

// BlankType is the placeholder receiver marker `_` evaluates to inside the
// argument list of an Apply/Command/Chain node (spec §4.A, §4.E.2). The call
// dispatcher replaces it with the current pipe-slot value, or leaves it as
// Blank if there is none.
type BlankType struct{}

// Blank is the sole placeholder receiver value.
var Blank = BlankType{}

func (BlankType) String() string { return "_" }
func (BlankType) Debug() string  { return "Blank" }
func (BlankType) Type() string   { return "Blank" }
func (BlankType) Truthy() bool   { return false }
