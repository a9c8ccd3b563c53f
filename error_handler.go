package command

// ErrorHandler must be implemented for a type to qualify as an error handler.
// Error handlers receive every error produced while a command is processed.
type ErrorHandler interface {
	Handle(cmd Command, err error)
}
