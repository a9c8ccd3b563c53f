package command

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"
)

// ------Enums------//
const (
	TestCommand1       Identifier = "test_command_1"
	TestCommand2       Identifier = "test_command_2"
	TestLiteralCommand Identifier = "test_literal_command"
	TestErrorCommand   Identifier = "test_error_command"
	TestUnhandled      Identifier = "test_unhandled"
)

//------Commands------//

type testCommand struct {
	identifier Identifier
}

func (cmd *testCommand) Identifier() Identifier {
	return cmd.identifier
}

type testCommand1 struct{}

func (*testCommand1) Identifier() Identifier {
	return TestCommand1
}

type testCommand2 struct{}

func (*testCommand2) Identifier() Identifier {
	return TestCommand2
}

type testCommand3 string

func (testCommand3) Identifier() Identifier {
	return TestLiteralCommand
}

type testCommandError struct{}

func (*testCommandError) Identifier() Identifier {
	return TestErrorCommand
}

//------Handlers------//

type testHandler struct {
	identifier Identifier
}

func (hdl *testHandler) Handles() Identifier {
	return hdl.identifier
}

func (hdl *testHandler) Handle(cmd Command) (data any, err error) {
	fibonacci(1000)
	return
}

type testErrorHandler struct{}

func (hdl *testErrorHandler) Handles() Identifier {
	return TestErrorCommand
}

func (hdl *testErrorHandler) Handle(cmd Command) (data any, err error) {
	err = errors.New("command failed")
	return
}

type testAsyncHandler struct {
	wg         *sync.WaitGroup
	identifier Identifier
}

func (hdl *testAsyncHandler) Handles() Identifier {
	return hdl.identifier
}

func (hdl *testAsyncHandler) Handle(cmd Command) (data any, err error) {
	fibonacci(1000)
	hdl.wg.Done()
	return
}

type testCountingHandler struct {
	handled    atomic.Int32
	identifier Identifier
}

func (hdl *testCountingHandler) Handles() Identifier {
	return hdl.identifier
}

func (hdl *testCountingHandler) Handle(cmd Command) (data any, err error) {
	hdl.handled.Add(1)
	return
}

func (hdl *testCountingHandler) Handled() int32 {
	return hdl.handled.Load()
}

type testAsyncAwaitHandler struct {
	identifier Identifier
}

func (hdl *testAsyncAwaitHandler) Handles() Identifier {
	return hdl.identifier
}

func (hdl *testAsyncAwaitHandler) Handle(cmd Command) (data any, err error) {
	data = "not ok"
	switch any(cmd).(type) {
	case *testCommand1:
		data = nil
	case *testCommand2:
		data = "ok"
	}
	return data, err
}

//------Error Handlers------//

type storeErrorsHandler struct {
	sync.Mutex
	errs map[Identifier]error
}

func newStoreErrorsHandler() *storeErrorsHandler {
	return &storeErrorsHandler{
		errs: make(map[Identifier]error),
	}
}

func (hdl *storeErrorsHandler) Handle(cmd Command, err error) {
	hdl.Lock()
	hdl.errs[hdl.key(cmd)] = err
	hdl.Unlock()
}

func (hdl *storeErrorsHandler) Error(cmd Command) error {
	hdl.Lock()
	defer hdl.Unlock()
	if err, hasError := hdl.errs[hdl.key(cmd)]; hasError {
		return err
	}
	return nil
}

func (hdl *storeErrorsHandler) key(cmd Command) Identifier {
	return identify(cmd)
}

// ------Middlewares------//

type testLoggerMiddleware struct {
	sync.Mutex
	logs   []string
	testId string
}

func newTestLoggerMiddleware(testId string) *testLoggerMiddleware {
	return &testLoggerMiddleware{
		testId: testId,
	}
}

func (mdl *testLoggerMiddleware) HandleInward(cmd Command) error {
	mdl.log(fmt.Sprintf("%s|inward|%s", mdl.testId, cmd.Identifier()))
	return nil
}

func (mdl *testLoggerMiddleware) HandleOutward(cmd Command, data any, err error) (any, error) {
	mdl.log(fmt.Sprintf("%s|outward|%s", mdl.testId, cmd.Identifier()))
	return data, err
}

func (mdl *testLoggerMiddleware) Handle(ctx context.Context, cmd Command, next Next) (any, error) {
	mdl.log(fmt.Sprintf("%s|before|%s", mdl.testId, cmd.Identifier()))
	data, err := next(ctx, cmd)
	mdl.log(fmt.Sprintf("%s|after|%s", mdl.testId, cmd.Identifier()))
	return data, err
}

func (mdl *testLoggerMiddleware) log(message string) {
	mdl.Lock()
	mdl.logs = append(mdl.logs, message)
	mdl.Unlock()
}

func (mdl *testLoggerMiddleware) Logs() []string {
	mdl.Lock()
	defer mdl.Unlock()
	return append([]string(nil), mdl.logs...)
}

type testErrorMiddleware struct {
	inwardFailure  bool
	outwardFailure bool
}

func (mdl *testErrorMiddleware) HandleInward(cmd Command) error {
	if mdl.inwardFailure {
		return errors.New("inward middleware failure")
	}
	return nil
}

func (mdl *testErrorMiddleware) HandleOutward(cmd Command, data any, err error) (any, error) {
	if mdl.outwardFailure {
		return nil, errors.New("outward middleware failure")
	}
	return data, err
}

//------General------//

func fibonacci(n uint) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	a, b := big.NewInt(0), big.NewInt(1)
	for n--; n > 0; n-- {
		a.Add(a, b)
		a, b = b, a
	}

	return b
}
