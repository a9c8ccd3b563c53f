package command

import (
	"context"
	"runtime"

	"github.com/google/uuid"
	"github.com/io-da/schedule"
	"github.com/rs/zerolog"
)

// Bus is the only struct exported and required for the command bus usage.
// The Bus should be instantiated using the NewBus function.
type Bus struct {
	workerPoolSize     int
	queueBuffer        int
	initialized        *flag
	shuttingDown       *flag
	workers            *counter
	handlers           map[Identifier]Handler
	errorHandlers      []ErrorHandler
	inwardMiddlewares  []InwardMiddleware
	outwardMiddlewares []OutwardMiddleware
	middlewares        []Middleware
	logger             zerolog.Logger
	asyncCommandsQueue chan *Async
	closed             chan bool
	scheduleProcessor  *scheduleProcessor
}

// NewBus instantiates the Bus struct.
// The Initialization of the Bus is performed separately (Initialize function) for dependency injection purposes.
func NewBus() *Bus {
	bus := &Bus{
		workerPoolSize: runtime.GOMAXPROCS(0),
		queueBuffer:    100,
		initialized:    newFlag(),
		shuttingDown:   newFlag(),
		workers:        newCounter(),
		handlers:       make(map[Identifier]Handler),
		errorHandlers:  make([]ErrorHandler, 0),
		logger:         zerolog.Nop(),
		closed:         make(chan bool),
	}
	return bus
}

// WorkerPoolSize may optionally be provided to tweak the worker pool size for async commands.
// It can only be adjusted *before* the bus is initialized.
// It defaults to the value returned by runtime.GOMAXPROCS(0).
func (bus *Bus) WorkerPoolSize(workerPoolSize int) {
	if !bus.initialized.enabled() {
		bus.workerPoolSize = workerPoolSize
	}
}

// QueueBuffer may optionally be provided to tweak the buffer size of the async commands queue.
// This value may have high impact on performance depending on the use case.
// It can only be adjusted *before* the bus is initialized.
// It defaults to 100.
func (bus *Bus) QueueBuffer(queueBuffer int) {
	if !bus.initialized.enabled() {
		bus.queueBuffer = queueBuffer
	}
}

// ErrorHandlers may optionally be provided.
// They will receive any error thrown during the command process.
func (bus *Bus) ErrorHandlers(hdls ...ErrorHandler) {
	if !bus.initialized.enabled() {
		bus.errorHandlers = hdls
	}
}

// InwardMiddlewares may optionally be provided.
// They will run, in order, before the command reaches its handler.
func (bus *Bus) InwardMiddlewares(mdls ...InwardMiddleware) {
	if !bus.initialized.enabled() {
		bus.inwardMiddlewares = mdls
	}
}

// OutwardMiddlewares may optionally be provided.
// They will run, in order, after the command handler returned.
func (bus *Bus) OutwardMiddlewares(mdls ...OutwardMiddleware) {
	if !bus.initialized.enabled() {
		bus.outwardMiddlewares = mdls
	}
}

// Middlewares may optionally be provided.
// They wrap the command handler, the first middleware being the outermost.
func (bus *Bus) Middlewares(mdls ...Middleware) {
	if !bus.initialized.enabled() {
		bus.middlewares = mdls
	}
}

// Logger may optionally be provided. The bus logs nothing by default.
func (bus *Bus) Logger(logger zerolog.Logger) {
	if !bus.initialized.enabled() {
		bus.logger = logger
	}
}

// Initialize the command bus.
// There can only be one handler per command identifier.
func (bus *Bus) Initialize(hdls ...Handler) error {
	if !bus.initialized.enable() {
		return nil
	}
	handlers := make(map[Identifier]Handler, len(hdls))
	for _, hdl := range hdls {
		if _, exists := handlers[hdl.Handles()]; exists {
			bus.initialized.disable()
			return OneHandlerPerCommandError
		}
		handlers[hdl.Handles()] = hdl
	}
	bus.handlers = handlers
	bus.asyncCommandsQueue = make(chan *Async, bus.queueBuffer)
	for i := 0; i < bus.workerPoolSize; i++ {
		bus.workers.increment()
		go bus.worker(bus.asyncCommandsQueue, bus.closed)
	}
	bus.scheduleProcessor = newScheduleProcessor(bus)
	bus.logger.Debug().
		Str("func", "*Bus.Initialize").
		Int("handlers", len(handlers)).
		Int("workers", bus.workerPoolSize).
		Msg("command bus initialized")
	return nil
}

// HandleAsync the command using the workers asynchronously.
func (bus *Bus) HandleAsync(cmd Command) (*Async, error) {
	return bus.HandleAsyncContext(context.Background(), cmd)
}

// HandleAsyncContext the command using the workers asynchronously.
// The provided context is handed to the wrapping middlewares once a worker picks the command up.
func (bus *Bus) HandleAsyncContext(ctx context.Context, cmd Command) (*Async, error) {
	if err := bus.isValid(cmd); err != nil {
		return nil, err
	}
	as := newAsync(ctx, cmd)
	bus.asyncCommandsQueue <- as
	return as, nil
}

// Handle the command synchronously.
func (bus *Bus) Handle(cmd Command) (any, error) {
	return bus.HandleContext(context.Background(), cmd)
}

// HandleContext the command synchronously.
// The provided context is handed to the wrapping middlewares.
func (bus *Bus) HandleContext(ctx context.Context, cmd Command) (any, error) {
	if err := bus.isValid(cmd); err != nil {
		return nil, err
	}
	return bus.handle(ctx, cmd)
}

// Schedule the command to be handled asynchronously according to the provided schedule.
// The returned key may be used to remove the scheduled command.
func (bus *Bus) Schedule(cmd Command, sch *schedule.Schedule) (*uuid.UUID, error) {
	if err := bus.isValid(cmd); err != nil {
		return nil, err
	}
	if sch == nil {
		bus.error(cmd, InvalidScheduleError)
		return nil, InvalidScheduleError
	}
	key := bus.scheduleProcessor.add(newScheduledCommand(cmd, sch))
	return &key, nil
}

// RemoveScheduled removes the scheduled commands matching the provided keys.
func (bus *Bus) RemoveScheduled(keys ...uuid.UUID) {
	if bus.scheduleProcessor != nil {
		bus.scheduleProcessor.remove(keys...)
	}
}

// Shutdown the command bus gracefully.
// *Async commands handled while shutting down will be disregarded*.
func (bus *Bus) Shutdown() {
	if bus.shuttingDown.enable() {
		go bus.shutdown()
	}
}

//-----Private Functions------//

func (bus *Bus) worker(asyncCommandsQueue <-chan *Async, closed chan<- bool) {
	for as := range asyncCommandsQueue {
		if as == nil {
			break
		}
		data, err := bus.handle(as.ctx, as.cmd)
		if err != nil {
			as.fail(err)
			continue
		}
		as.success(data)
	}
	closed <- true
}

func (bus *Bus) handle(ctx context.Context, cmd Command) (data any, err error) {
	hdl, found := bus.handlers[cmd.Identifier()]
	if !found {
		bus.error(cmd, HandlerNotFoundError)
		return nil, HandlerNotFoundError
	}

	for _, mdl := range bus.inwardMiddlewares {
		if err = mdl.HandleInward(cmd); err != nil {
			bus.error(cmd, err)
			return nil, err
		}
	}

	data, err = chain(hdl, bus.middlewares)(ctx, cmd)

	for _, mdl := range bus.outwardMiddlewares {
		data, err = mdl.HandleOutward(cmd, data, err)
	}
	if err != nil {
		bus.error(cmd, err)
	}
	return data, err
}

func (bus *Bus) shutdown() {
	for !bus.workers.is(0) {
		bus.asyncCommandsQueue <- nil
		<-bus.closed
		bus.workers.decrement()
	}
	if bus.scheduleProcessor != nil {
		bus.scheduleProcessor.shutdown()
	}
	bus.initialized.disable()
	bus.shuttingDown.disable()
	bus.logger.Debug().Str("func", "*Bus.shutdown").Msg("command bus shut down")
}

func (bus *Bus) isValid(cmd Command) error {
	var err error
	if cmd == nil {
		err = InvalidCommandError
		bus.error(cmd, err)
		return err
	}
	if !bus.initialized.enabled() {
		err = BusNotInitializedError
		bus.error(cmd, err)
		return err
	}
	if bus.shuttingDown.enabled() {
		err = BusIsShuttingDownError
		bus.error(cmd, err)
		return err
	}
	return nil
}

func (bus *Bus) error(cmd Command, err error) {
	bus.logger.Debug().
		Err(err).
		Str("func", "*Bus.error").
		Str("command", string(identify(cmd))).
		Msg("command failed")
	for _, errHdl := range bus.errorHandlers {
		errHdl.Handle(cmd, err)
	}
}
