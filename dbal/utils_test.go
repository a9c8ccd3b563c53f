package dbal

import (
	"context"
	"sync"

	command "github.com/io-da/command-dbal"
)

//------Commands------//

const testCommandIdentifier command.Identifier = "test_command"

type testCommand struct{}

func (*testCommand) Identifier() command.Identifier {
	return testCommandIdentifier
}

//------Connections------//

// testConnection records every call it receives.
// Each behaviour may be overridden through the matching function field.
type testConnection struct {
	sync.Mutex
	calls            []string
	queries          []string
	databasePlatform func() (Platform, error)
	executeQuery     func(ctx context.Context, query string) error
	close            func() error
	connect          func(ctx context.Context) error
}

func newTestConnection() *testConnection {
	return &testConnection{
		databasePlatform: func() (Platform, error) {
			return platform{name: "test", dummySelect: ""}, nil
		},
		executeQuery: func(ctx context.Context, query string) error {
			return nil
		},
		close: func() error {
			return nil
		},
		connect: func(ctx context.Context) error {
			return nil
		},
	}
}

func (c *testConnection) DatabasePlatform() (Platform, error) {
	c.record("DatabasePlatform")
	return c.databasePlatform()
}

func (c *testConnection) ExecuteQuery(ctx context.Context, query string) error {
	c.record("ExecuteQuery")
	c.Lock()
	c.queries = append(c.queries, query)
	c.Unlock()
	return c.executeQuery(ctx, query)
}

func (c *testConnection) Close() error {
	c.record("Close")
	return c.close()
}

func (c *testConnection) Connect(ctx context.Context) error {
	c.record("Connect")
	return c.connect(ctx)
}

func (c *testConnection) record(call string) {
	c.Lock()
	c.calls = append(c.calls, call)
	c.Unlock()
}

func (c *testConnection) Calls() []string {
	c.Lock()
	defer c.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *testConnection) Count(call string) int {
	count := 0
	for _, recorded := range c.Calls() {
		if recorded == call {
			count++
		}
	}
	return count
}

//------Pipeline------//

type testNext struct {
	executed int
	calls    *[]string
	data     any
	err      error
}

func (n *testNext) Next(ctx context.Context, cmd command.Command) (any, error) {
	n.executed++
	if n.calls != nil {
		*n.calls = append(*n.calls, "next")
	}
	return n.data, n.err
}
