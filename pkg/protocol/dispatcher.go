package protocol

import (
	"fmt"
	"strings"
	"sync"

	customlog "github.com/wildrobo/teleop/pkg/log"
)

// CommandHandler defines the interface for handlers bound to a command name.
// args holds the whitespace-separated tokens after the command name.
type CommandHandler interface {
	HandleCommand(args []string) error
}

// CommandHandlerFunc is a function type that implements CommandHandler
type CommandHandlerFunc func(args []string) error

// HandleCommand calls the function
func (f CommandHandlerFunc) HandleCommand(args []string) error {
	return f(args)
}

// Dispatcher routes decoded lines to the handler registered for their
// first token. Malformed input surfaces as an error to the caller;
// it never terminates anything.
type Dispatcher struct {
	handlers map[string]CommandHandler
	logger   customlog.Logger
	mu       sync.RWMutex
}

// NewDispatcher creates an empty command dispatcher
func NewDispatcher(logger customlog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string]CommandHandler),
		logger:   logger,
	}
}

// RegisterHandler adds a handler for a command name
func (d *Dispatcher) RegisterHandler(command string, handler CommandHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[command] = handler
	d.logger.Debugf("Registered handler for command: %s", command)
}

// RegisterHandlerFunc adds a handler function for a command name
func (d *Dispatcher) RegisterHandlerFunc(command string, handler func(args []string) error) {
	d.RegisterHandler(command, CommandHandlerFunc(handler))
}

// Dispatch tokenizes one decoded line and invokes the matching handler.
// Blank lines are ignored. An unregistered command name is reported as
// ErrUnknownCommand.
func (d *Dispatcher) Dispatch(line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}

	d.mu.RLock()
	handler, exists := d.handlers[tokens[0]]
	d.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, line)
	}

	return handler.HandleCommand(tokens[1:])
}
