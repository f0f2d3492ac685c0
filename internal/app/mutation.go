package app

import (
	"context"
	"sync"
)

// Mutation - состояние одной мутации для слоя представления: запуск, признак выполнения, исход
type Mutation[In, Out any] struct {
	run func(ctx context.Context, in In) (Out, error)

	mu      sync.Mutex
	pending int
	result  Out
	err     error
	settled bool
}

func NewMutation[In, Out any](run func(ctx context.Context, in In) (Out, error)) *Mutation[In, Out] {
	return &Mutation[In, Out]{run: run}
}

// Trigger выполняет мутацию; исход последнего завершившегося вызова доступен через Result
func (m *Mutation[In, Out]) Trigger(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	m.pending++
	m.mu.Unlock()

	out, err := m.run(ctx, in)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending--
	m.result = out
	m.err = err
	m.settled = true
	return out, err
}

func (m *Mutation[In, Out]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending > 0
}

// Outcome - исход последнего завершившегося вызова; Settled=false, если Trigger еще не завершался
type Outcome[Out any] struct {
	Value   Out
	Err     error
	Settled bool
}

func (m *Mutation[In, Out]) Result() Outcome[Out] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Outcome[Out]{Value: m.result, Err: m.err, Settled: m.settled}
}
