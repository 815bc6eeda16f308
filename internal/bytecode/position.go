package bytecode

import "strconv"

// Position is a source location attached to a compiled instruction, used
// only for error attribution (spec §6, §7).
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return "<unknown>"
	}
	return p.File + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}
