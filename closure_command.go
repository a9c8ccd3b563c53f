package command

// ClosureIdentifier identifies every Closure command.
const ClosureIdentifier Identifier = "closure"

// Closure is the type used by the bus to handle closures.
type Closure func() (data any, err error)

func (Closure) Identifier() Identifier {
	return ClosureIdentifier
}

// ClosureHandler handles every Closure command by calling it.
// It must be provided to Initialize for closures to be handled.
type ClosureHandler struct{}

func (hdl *ClosureHandler) Handles() Identifier {
	return ClosureIdentifier
}

func (hdl *ClosureHandler) Handle(cmd Command) (data any, err error) {
	if fn, ok := cmd.(Closure); ok {
		return fn()
	}
	return nil, InvalidClosureCommandError
}
