package commands

import "strings"

// Handler is the interface for local command handlers
type Handler interface {
	Execute(ctx *Context) bool
	Name() string
	Aliases() []string
	Description() string
}

// Dispatcher routes locally typed slash commands to their handlers.
// Anything it does not recognize is left for the server.
type Dispatcher struct {
	handlers map[string]Handler
	ordered  []Handler
}

// NewDispatcher creates a dispatcher with the default local commands
func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[string]Handler),
	}

	d.Register(&JoinHandler{})
	d.Register(&LeaveHandler{})
	d.Register(&ChallengeHandler{})

	return d
}

// Register adds a handler under its name and every alias
func (d *Dispatcher) Register(h Handler) {
	d.handlers[h.Name()] = h
	for _, alias := range h.Aliases() {
		d.handlers[alias] = h
	}
	d.ordered = append(d.ordered, h)
}

// Dispatch interprets line as a local command. It returns false when the
// line is not a local command and must be sent as is.
func (d *Dispatcher) Dispatch(line string, ctx *Context) bool {
	cmd, target, ok := Parse(line)
	if !ok {
		return false
	}
	handler, ok := d.handlers[cmd]
	if !ok {
		return false
	}
	ctx.Target = target
	return handler.Execute(ctx)
}

// GetHandler returns a handler by command name or alias
func (d *Dispatcher) GetHandler(cmdName string) (Handler, bool) {
	h, ok := d.handlers[cmdName]
	return h, ok
}

// Handlers returns the registered handlers in registration order
func (d *Dispatcher) Handlers() []Handler {
	return append([]Handler(nil), d.ordered...)
}

// Parse splits a slash command into its name and argument. "//" escapes a
// literal leading slash and is not a command.
func Parse(line string) (cmd, target string, ok bool) {
	if !strings.HasPrefix(line, "/") || strings.HasPrefix(line, "//") {
		return "", "", false
	}
	body := line[1:]
	if space := strings.IndexByte(body, ' '); space >= 0 {
		return body[:space], body[space+1:], true
	}
	return body, "", true
}
