package command

// AsyncResult is produced by AsyncList.AwaitIterator for every async command that finished.
type AsyncResult struct {
	Index int
	Data  any
	Err   error
}

func (res AsyncResult) Get() (any, error) {
	return res.Data, res.Err
}
