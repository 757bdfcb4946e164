package usecase

import (
	"context"
	"fmt"
)

// Transaction runs named steps in order. Fatal steps stop the run on the
// first error. Best-effort steps run only after every fatal step succeeded;
// their errors are collected and never stop the run.
//
// Nothing is rolled back: once a fatal step has committed, later failures
// leave its effect in place.
type Transaction struct {
	operations []Operation
	auxiliary  []Operation
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

// Outcome is the result of one best-effort step. Err is nil on success and
// ErrSkipped when the step had nothing to do.
type Outcome struct {
	Name string
	Err  error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, fn})
}

func (t *Transaction) AddBestEffort(name string, fn func(context.Context) error) {
	t.auxiliary = append(t.auxiliary, Operation{name, fn})
}

// Execute runs the fatal steps with ctx. Best-effort steps get auxCtx so
// callers can detach them from request cancellation.
func (t *Transaction) Execute(ctx, auxCtx context.Context) ([]Outcome, error) {
	for _, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			return nil, fmt.Errorf("operation '%s' failed: %w", op.Name, err)
		}
	}

	outcomes := make([]Outcome, 0, len(t.auxiliary))
	for _, op := range t.auxiliary {
		outcomes = append(outcomes, Outcome{Name: op.Name, Err: op.Fn(auxCtx)})
	}
	return outcomes, nil
}
