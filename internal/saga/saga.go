package saga

import (
	"context"
	"strings"
	"sync"

	"github.com/bagdasarian/team-dashboard/internal/domain"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

type State string

const (
	StateStarted      State = "started"
	StateStep1Done    State = "step1_done"
	StateStep2Done    State = "step2_done"
	StateCompensating State = "compensating"
	StateFailed       State = "failed"
	StateCommitted    State = "committed"
)

// Step - одна запись в бэкенд
type Step func(ctx context.Context) error

// Saga - две последовательные записи без общей транзакции.
// Если второй шаг не удался, выполняется компенсация первого (если она задана).
type Saga struct {
	Name       string
	Step1      Step
	Step2      Step
	Compensate Step

	logger  *zap.Logger
	mu      sync.Mutex
	history []State
}

func New(name string, step1, step2, compensate Step, logger *zap.Logger) *Saga {
	return &Saga{
		Name:       name,
		Step1:      step1,
		Step2:      step2,
		Compensate: compensate,
		logger:     logger,
	}
}

// Run выполняет шаги строго по порядку: второй шаг не запускается до результата первого.
//
// Возвращает nil при фиксации, ошибку первого шага как есть, ошибку второго шага после
// успешной компенсации и PARTIAL_FAILURE, если компенсация не удалась или отсутствует.
func (s *Saga) Run(ctx context.Context) error {
	if s.Step1 == nil || s.Step2 == nil {
		panic("saga " + s.Name + ": both steps are required")
	}

	s.transition(StateStarted)

	if err := s.Step1(ctx); err != nil {
		s.transition(StateFailed)
		return err
	}
	s.transition(StateStep1Done)

	stepErr := s.Step2(ctx)
	if stepErr == nil {
		s.transition(StateStep2Done)
		s.transition(StateCommitted)
		return nil
	}

	var result *multierror.Error
	result = multierror.Append(result, stepErr)
	result.ErrorFormat = compactFormat

	if s.Compensate == nil {
		s.transition(StateFailed)
		s.logger.Error("saga failed without compensation",
			zap.String("saga", s.Name),
			zap.Error(stepErr),
		)
		return domain.NewPartialFailureError(s.Name, result.ErrorOrNil())
	}

	s.transition(StateCompensating)
	if err := s.Compensate(ctx); err != nil {
		result = multierror.Append(result, err)
		s.transition(StateFailed)
		s.logger.Error("saga compensation failed",
			zap.String("saga", s.Name),
			zap.Error(result),
		)
		return domain.NewPartialFailureError(s.Name, result.ErrorOrNil())
	}

	s.transition(StateFailed)
	s.logger.Warn("saga compensated", zap.String("saga", s.Name), zap.Error(stepErr))
	return stepErr
}

// State возвращает текущее состояние; до запуска - пустую строку
func (s *Saga) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return ""
	}
	return s.history[len(s.history)-1]
}

// History возвращает все пройденные состояния по порядку
func (s *Saga) History() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]State(nil), s.history...)
}

func (s *Saga) transition(state State) {
	s.mu.Lock()
	s.history = append(s.history, state)
	s.mu.Unlock()

	s.logger.Debug("saga transition", zap.String("saga", s.Name), zap.String("state", string(state)))
}

func compactFormat(errs []error) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}
