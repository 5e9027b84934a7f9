package weavetest

import feevault "github.com/iov-one/feevault"

// Handler is a mock implementation of the feevault.Handler interface that
// counts calls and returns the configured results.
type Handler struct {
	checkCall   int
	CheckResult feevault.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult feevault.DeliverResult
	DeliverErr    error
}

var _ feevault.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// WriteHandler writes a key value pair to the store before returning the
// configured error. It is used to test that failed transactions leave no
// trace.
type WriteHandler struct {
	Key   []byte
	Value []byte
	Err   error
}

var _ feevault.Handler = WriteHandler{}

func (h WriteHandler) Check(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.CheckResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &feevault.CheckResult{}, nil
}

func (h WriteHandler) Deliver(ctx feevault.Context, db feevault.KVStore, tx feevault.Tx) (*feevault.DeliverResult, error) {
	if err := db.Set(h.Key, h.Value); err != nil {
		return nil, err
	}
	if h.Err != nil {
		return nil, h.Err
	}
	return &feevault.DeliverResult{}, nil
}

// PanicHandler always panics with the given value.
type PanicHandler struct {
	Value interface{}
}

var _ feevault.Handler = PanicHandler{}

func (h PanicHandler) Check(feevault.Context, feevault.KVStore, feevault.Tx) (*feevault.CheckResult, error) {
	panic(h.Value)
}

func (h PanicHandler) Deliver(feevault.Context, feevault.KVStore, feevault.Tx) (*feevault.DeliverResult, error) {
	panic(h.Value)
}
