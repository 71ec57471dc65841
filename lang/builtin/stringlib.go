package builtin

import (
	"strings"
	"unicode"

	"github.com/lumesh-lang/lumesh/lang/value"
)

// stringFuncs is grounded in original_source/src/modules/bin/string_module.rs.
func stringFuncs() []*value.Builtin {
	return []*value.Builtin{
		builtinFunc("is_whitespace", "check if string is all whitespace", "<string>", biStrIsWhitespace),
		builtinFunc("is_alpha", "check if string is all alphabetic", "<string>", biStrIsAlpha),
		builtinFunc("is_alphanumeric", "check if string is all alphanumeric", "<string>", biStrIsAlphanumeric),
		builtinFunc("is_numeric", "check if string is all numeric", "<string>", biStrIsNumeric),
		builtinFunc("is_lower", "check if string is all lowercase", "<string>", biStrIsLower),
		builtinFunc("is_upper", "check if string is all uppercase", "<string>", biStrIsUpper),
		builtinFunc("starts_with", "check if string starts with prefix", "<prefix> <string>", biStrStartsWith),
		builtinFunc("ends_with", "check if string ends with suffix", "<suffix> <string>", biStrEndsWith),
		builtinFunc("contains", "check if string contains substring", "<substring> <string>", biStrContains),
		builtinFunc("split", "split string by separator", "<separator> <string>", biStrSplit),
		builtinFunc("chars", "split string into a list of characters", "<string>", biStrChars),
		builtinFunc("words", "split string into words", "<string>", biStrWords),
		builtinFunc("lines", "split string into lines", "<string>", biStrLines),
		builtinFunc("repeat", "repeat a string n times", "<count> <string>", biStrRepeat),
		builtinFunc("replace", "replace all occurrences of a substring", "<from> <to> <string>", biStrReplace),
		builtinFunc("substring", "extract a substring by start and end", "<start> <end> <string>", biStrSubstring),
		builtinFunc("remove_prefix", "remove a prefix if present", "<prefix> <string>", biStrRemovePrefix),
		builtinFunc("remove_suffix", "remove a suffix if present", "<suffix> <string>", biStrRemoveSuffix),
		builtinFunc("trim", "trim whitespace from both ends", "<string>", biStrTrim),
		builtinFunc("trim_start", "trim whitespace from the start", "<string>", biStrTrimStart),
		builtinFunc("trim_end", "trim whitespace from the end", "<string>", biStrTrimEnd),
		builtinFunc("to_lower", "convert string to lowercase", "<string>", biStrToLower),
		builtinFunc("to_upper", "convert string to uppercase", "<string>", biStrToUpper),
		builtinFunc("to_title", "convert string to title case", "<string>", biStrToTitle),
		builtinFunc("get_width", "get the display width of a string", "<string>", biStrGetWidth),
	}
}

func biStrIsWhitespace(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("is_whitespace", args)
	if err != nil {
		return nil, err
	}
	return value.Bool(allRunes(s, unicode.IsSpace)), nil
}

func biStrIsAlpha(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("is_alpha", args)
	if err != nil {
		return nil, err
	}
	return value.Bool(allRunes(s, unicode.IsLetter)), nil
}

func biStrIsAlphanumeric(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("is_alphanumeric", args)
	if err != nil {
		return nil, err
	}
	return value.Bool(allRunes(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })), nil
}

func biStrIsNumeric(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("is_numeric", args)
	if err != nil {
		return nil, err
	}
	return value.Bool(allRunes(s, unicode.IsDigit)), nil
}

func biStrIsLower(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("is_lower", args)
	if err != nil {
		return nil, err
	}
	return value.Bool(s == strings.ToLower(s) && s != strings.ToUpper(s)), nil
}

func biStrIsUpper(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("is_upper", args)
	if err != nil {
		return nil, err
	}
	return value.Bool(s == strings.ToUpper(s) && s != strings.ToLower(s)), nil
}

func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

func str1(name string, args []value.Value) (string, error) {
	if err := requireArgs(name, args, 1); err != nil {
		return "", err
	}
	return asString(name, args[0])
}

func biStrStartsWith(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("starts_with", args, 2); err != nil {
		return nil, err
	}
	prefix, err := asString("starts_with", args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString("starts_with", args[1])
	if err != nil {
		return nil, err
	}
	return value.Bool(strings.HasPrefix(s, prefix)), nil
}

func biStrEndsWith(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("ends_with", args, 2); err != nil {
		return nil, err
	}
	suffix, err := asString("ends_with", args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString("ends_with", args[1])
	if err != nil {
		return nil, err
	}
	return value.Bool(strings.HasSuffix(s, suffix)), nil
}

func biStrContains(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("contains", args, 2); err != nil {
		return nil, err
	}
	sub, err := asString("contains", args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString("contains", args[1])
	if err != nil {
		return nil, err
	}
	return value.Bool(strings.Contains(s, sub)), nil
}

func biStrSplit(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("split", args, 2); err != nil {
		return nil, err
	}
	sep, err := asString("split", args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString("split", args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.String(p)
	}
	return value.NewList(out), nil
}

func biStrChars(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("chars", args)
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	out := make([]value.Value, len(rs))
	for i, r := range rs {
		out[i] = value.String(string(r))
	}
	return value.NewList(out), nil
}

func biStrWords(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("words", args)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(s)
	out := make([]value.Value, len(fields))
	for i, f := range fields {
		out[i] = value.String(f)
	}
	return value.NewList(out), nil
}

func biStrLines(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("lines", args)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return value.EmptyList(), nil
	}
	lines := strings.Split(s, "\n")
	out := make([]value.Value, len(lines))
	for i, l := range lines {
		out[i] = value.String(strings.TrimSuffix(l, "\r"))
	}
	return value.NewList(out), nil
}

func biStrRepeat(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("repeat", args, 2); err != nil {
		return nil, err
	}
	n, err := asInt("repeat", args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString("repeat", args[1])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, argErr("repeat", 0, 0)
	}
	return value.String(strings.Repeat(s, int(n))), nil
}

func biStrReplace(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("replace", args, 3); err != nil {
		return nil, err
	}
	from, err := asString("replace", args[0])
	if err != nil {
		return nil, err
	}
	to, err := asString("replace", args[1])
	if err != nil {
		return nil, err
	}
	s, err := asString("replace", args[2])
	if err != nil {
		return nil, err
	}
	return value.String(strings.ReplaceAll(s, from, to)), nil
}

func biStrSubstring(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("substring", args, 3); err != nil {
		return nil, err
	}
	start, err := asInt("substring", args[0])
	if err != nil {
		return nil, err
	}
	end, err := asInt("substring", args[1])
	if err != nil {
		return nil, err
	}
	s, err := asString("substring", args[2])
	if err != nil {
		return nil, err
	}
	rs := []rune(s)
	lo, hi := int(start), int(end)
	if lo < 0 {
		lo = 0
	}
	if hi > len(rs) {
		hi = len(rs)
	}
	if lo > hi {
		return value.String(""), nil
	}
	return value.String(string(rs[lo:hi])), nil
}

func biStrRemovePrefix(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("remove_prefix", args, 2); err != nil {
		return nil, err
	}
	prefix, err := asString("remove_prefix", args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString("remove_prefix", args[1])
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimPrefix(s, prefix)), nil
}

func biStrRemoveSuffix(args []value.Value, _ value.Env) (value.Value, error) {
	if err := requireArgs("remove_suffix", args, 2); err != nil {
		return nil, err
	}
	suffix, err := asString("remove_suffix", args[0])
	if err != nil {
		return nil, err
	}
	s, err := asString("remove_suffix", args[1])
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimSuffix(s, suffix)), nil
}

func biStrTrim(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("trim", args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimSpace(s)), nil
}

func biStrTrimStart(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("trim_start", args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimLeft(s, " \t\n\r")), nil
}

func biStrTrimEnd(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("trim_end", args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.TrimRight(s, " \t\n\r")), nil
}

func biStrToLower(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("to_lower", args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.ToLower(s)), nil
}

func biStrToUpper(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("to_upper", args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.ToUpper(s)), nil
}

func biStrToTitle(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("to_title", args)
	if err != nil {
		return nil, err
	}
	return value.String(strings.Title(strings.ToLower(s))), nil
}

func biStrGetWidth(args []value.Value, _ value.Env) (value.Value, error) {
	s, err := str1("get_width", args)
	if err != nil {
		return nil, err
	}
	return value.Int(len([]rune(s))), nil
}
