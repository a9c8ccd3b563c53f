package command

import "sync/atomic"

// flag is a boolean switched with compare-and-swap, so only one caller wins a transition.
type flag struct {
	atomic.Bool
}

func newFlag() *flag {
	return &flag{}
}

func (flg *flag) enabled() bool {
	return flg.Load()
}

func (flg *flag) enable() (swapped bool) {
	return flg.CompareAndSwap(false, true)
}

func (flg *flag) disable() (swapped bool) {
	return flg.CompareAndSwap(true, false)
}

type counter struct {
	atomic.Int32
}

func newCounter() *counter {
	return &counter{}
}

func (c *counter) increment() int32 {
	return c.Add(1)
}

func (c *counter) decrement() int32 {
	return c.Add(-1)
}

func (c *counter) is(v int32) bool {
	return c.Load() == v
}
