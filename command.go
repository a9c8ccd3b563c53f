package command

// Identifier is used to create a consistent identity solution for commands
type Identifier string

// Command is the interface that must be implemented by any type to be considered a command.
type Command interface {
	Identifier() Identifier
}

// identify returns the identifier of cmd, or an empty identifier for a nil command.
func identify(cmd Command) Identifier {
	if cmd == nil {
		return ""
	}
	return cmd.Identifier()
}
