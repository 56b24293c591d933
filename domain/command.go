package domain

// Command expresses caller intent, routed to exactly one handler.
type Command interface {
	Message
	isCommand()
}

// BaseCommand marks a struct as a Command.
type BaseCommand struct{}

func (BaseCommand) MessageKind() Kind { return KindCommand }
func (BaseCommand) isCommand() {}
