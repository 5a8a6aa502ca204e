package repl

import "github.com/entap/expr/lang"

// Sentinel errors.
var (
	ErrOutOfBounds     = lang.NewError("history index out of range")
	ErrEditDeclined    = lang.NewError("edit declined")
	ErrUnknownCommand  = lang.NewError("unknown command (try :help)")
	ErrUnknownVariable = lang.NewError("unknown variable")
	ErrNotAssignment   = lang.NewError("expected name = expression")
	ErrReservedName    = lang.NewError("name is a built-in constant or function")
)
