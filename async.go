package command

import (
	"context"
	"sync"
)

// Async is the struct returned from async commands.
type Async struct {
	sync.Mutex
	ctx      context.Context
	cmd      Command
	data     any
	err      error
	done     *flag
	pending  chan struct{}
	listener func(as *Async)
}

func newAsync(ctx context.Context, cmd Command) *Async {
	return &Async{
		ctx:     ctx,
		cmd:     cmd,
		done:    newFlag(),
		pending: make(chan struct{}),
	}
}

//------Fetch Data------//

// Await for the data from the return of the command
func (res *Async) Await() error {
	<-res.pending
	return res.err
}

// Get retrieves the data from the return of the command.
func (res *Async) Get() (any, error) {
	if err := res.Await(); err != nil {
		return nil, err
	}
	return res.data, nil
}

//------Internal------//

func (res *Async) notifyDone() {
	res.Lock()
	if !res.done.enable() {
		res.Unlock()
		return
	}
	listener := res.listener
	res.Unlock()

	close(res.pending)
	if listener != nil {
		listener(res)
	}
}

// setListener registers the function to be called once the command is done.
// If the command already finished, the listener is called immediately.
func (res *Async) setListener(listener func(as *Async)) {
	res.Lock()
	if res.done.enabled() {
		res.Unlock()
		listener(res)
		return
	}
	res.listener = listener
	res.Unlock()
}

func (res *Async) fail(err error) {
	res.err = err
	res.notifyDone()
}

func (res *Async) success(data any) {
	res.data = data
	res.notifyDone()
}
