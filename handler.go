package command

// Handler must be implemented for a type to qualify as a command handler.
// Each handler is responsible for exactly one command identifier.
type Handler interface {
	Handles() Identifier
	Handle(cmd Command) (data any, err error)
}
