package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"entregador/internal/latency"
	"entregador/internal/notify"
	"entregador/models"
)

// StatusUpdater is the part of the delivery store a session drives.
type StatusUpdater interface {
	Delivery(id string) (models.Delivery, bool)
	UpdateDeliveryStatus(id string, status models.DeliveryStatus) error
}

// Delays paces the simulated actions of a session.
type Delays struct {
	Collect  time.Duration
	Deliver  time.Duration
	Navigate time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier sets where toasts go. Defaults to a Recorder.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithDelays sets the simulated action latencies. Defaults to none.
func WithDelays(d Delays) Option {
	return func(s *Session) { s.delays = d }
}

// WithLogger sets the session logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session drives one delivery through collect, deliver and return.
// Only one action runs at a time; a second caller gets ErrBusy.
type Session struct {
	mu       sync.Mutex
	id       string
	updater  StatusUpdater
	notifier notify.Notifier
	delays   Delays
	log      *zap.Logger

	needsReturn bool
	reached     Stage
	viewing     Stage
	finished    bool
	busy        bool
	counter     ReturnCounter
	damaged     *bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession opens a session for delivery id, resuming at the stage its status implies.
func NewSession(updater StatusUpdater, id string, opts ...Option) (*Session, error) {
	d, ok := updater.Delivery(id)
	if !ok {
		return nil, fmt.Errorf("open session %s: %w", id, ErrDeliveryNotFound)
	}
	s := &Session{
		id:       id,
		updater:  updater,
		notifier: &notify.Recorder{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.needsReturn = d.NeedsReturn()
	s.counter = ReturnCounter{Max: d.MaxReturnQuantity()}
	stage, active := StageForStatus(d.Status, s.needsReturn)
	s.reached, s.viewing, s.finished = stage, stage, !active
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.log = s.log.With(zap.String("delivery_id", id))
	s.log.Debug("session opened", zap.String("status", string(d.Status)), zap.Stringer("stage", stage))
	return s, nil
}

// Close cancels any pending wait. Further actions return ErrSessionClosed.
func (s *Session) Close() {
	s.cancel()
}

func (s *Session) DeliveryID() string { return s.id }
func (s *Session) NeedsReturn() bool  { return s.needsReturn }

// Stage returns the furthest stage reached.
func (s *Session) Stage() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reached
}

// Viewing returns the stage currently shown, which may be behind Stage after GoBack or StepPress.
func (s *Session) Viewing() Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewing
}

// Finished reports whether the delivery needs no further stage.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Timeline returns the progress indicator model.
func (s *Session) Timeline() Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Timeline{Current: s.viewing, Reached: s.reached, Done: s.finished, CanNavigate: !s.busy}
}

func (s *Session) ReturnQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter.Quantity
}

func (s *Session) MaxReturnQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter.Max
}

// Damaged returns the damaged-container answer, if given.
func (s *Session) Damaged() (damaged, determined bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.damaged == nil {
		return false, false
	}
	return *s.damaged, true
}

// ConfirmCollection confirms the products were picked up at the depot.
func (s *Session) ConfirmCollection(ctx context.Context) error {
	if err := s.begin(StageCollect); err != nil {
		return err
	}
	defer s.end()
	if err := s.wait(ctx, s.delays.Collect); err != nil {
		return err
	}
	return s.finishCollect(ctx, false, "Coleta Confirmada!", "Produtos coletados com sucesso.")
}

// AlreadyHaveProducts advances past collection without the depot step.
func (s *Session) AlreadyHaveProducts(ctx context.Context) error {
	if err := s.begin(StageCollect); err != nil {
		return err
	}
	defer s.end()
	s.notifier.ShowInfo("Seleção Confirmada", "Você já possui os produtos")
	return s.finishCollect(ctx, true, "Produtos Confirmados!", "Seguindo para a entrega...")
}

// Skip skips the viewed stage. At collect it behaves like AlreadyHaveProducts;
// at return it completes the delivery without the damaged check.
func (s *Session) Skip(ctx context.Context) error {
	switch s.Viewing() {
	case StageCollect:
		return s.AlreadyHaveProducts(ctx)
	case StageReturn:
		if err := s.begin(StageReturn); err != nil {
			return err
		}
		defer s.end()
		return s.completeReturn(true)
	default:
		return fmt.Errorf("skip at %s: %w", s.Viewing(), ErrWrongStage)
	}
}

// ConfirmDelivery hands the products to the customer. Deliveries without
// returnable items finish here; the rest move on to the return stage.
func (s *Session) ConfirmDelivery(ctx context.Context) error {
	if err := s.begin(StageDeliver); err != nil {
		return err
	}
	defer s.end()
	if err := s.wait(ctx, s.delays.Deliver); err != nil {
		return err
	}

	d, ok := s.updater.Delivery(s.id)
	if !ok {
		return fmt.Errorf("confirm delivery %s: %w", s.id, ErrDeliveryNotFound)
	}
	if d.Status != models.DeliveryStatusDelivered {
		if err := s.updater.UpdateDeliveryStatus(s.id, models.DeliveryStatusDelivered); err != nil {
			s.notifier.ShowError("Erro", "Não foi possível confirmar a entrega.")
			return fmt.Errorf("confirm delivery %s: %w", s.id, err)
		}
	}

	s.mu.Lock()
	if s.needsReturn {
		s.reached, s.viewing = StageReturn, StageReturn
	} else {
		s.finished = true
	}
	needsReturn := s.needsReturn
	s.mu.Unlock()

	if needsReturn {
		s.notifier.ShowSuccess("Entrega Confirmada!", "Agora colete os vasilhames vazios.")
	} else {
		s.notifier.ShowSuccess("Entrega Concluída!", "Produtos entregues com sucesso.")
	}
	s.log.Info("delivery confirmed", zap.Bool("needs_return", needsReturn))
	return nil
}

// SetDamaged records whether a damaged container was found.
func (s *Session) SetDamaged(damaged bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.atReturnLocked(); err != nil {
		return err
	}
	s.damaged = &damaged
	return nil
}

func (s *Session) IncrementReturn() error {
	return s.adjustReturn(func(c *ReturnCounter) { c.Increment() })
}

func (s *Session) DecrementReturn() error {
	return s.adjustReturn(func(c *ReturnCounter) { c.Decrement() })
}

// SetReturnQuantity sets the counter, clamped to [0, MaxReturnQuantity].
func (s *Session) SetReturnQuantity(n int) error {
	return s.adjustReturn(func(c *ReturnCounter) { c.Set(n) })
}

func (s *Session) adjustReturn(fn func(*ReturnCounter)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.atReturnLocked(); err != nil {
		return err
	}
	fn(&s.counter)
	return nil
}

// CompleteReturn finishes the delivery. A positive return quantity requires
// the damaged answer first; without it nothing is changed.
func (s *Session) CompleteReturn(ctx context.Context) error {
	if err := s.begin(StageReturn); err != nil {
		return err
	}
	defer s.end()
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.completeReturn(false)
}

func (s *Session) completeReturn(skipped bool) error {
	s.mu.Lock()
	qty := s.counter.Quantity
	damaged := s.damaged
	s.mu.Unlock()

	if !skipped && qty > 0 && damaged == nil {
		s.notifier.ShowError("Informação Incompleta", "Por favor, informe se há botijão avariado antes de finalizar.")
		return ErrDamageUndetermined
	}
	if err := s.updater.UpdateDeliveryStatus(s.id, models.DeliveryStatusReturned); err != nil {
		s.notifier.ShowError("Erro", "Não foi possível finalizar a entrega.")
		return fmt.Errorf("complete return %s: %w", s.id, err)
	}

	s.mu.Lock()
	s.finished = true
	s.mu.Unlock()

	if skipped {
		s.notifier.ShowSuccess("Entrega Concluída!", "Devolução de vasilhames pulada.")
	} else {
		answer := "Não"
		if damaged != nil && *damaged {
			answer = "Sim"
		}
		s.notifier.ShowSuccess("Entrega Concluída!", fmt.Sprintf("Vasilhames devolvidos: %d. Botijão avariado: %s", qty, answer))
	}
	s.log.Info("return completed", zap.Int("returned", qty), zap.Bool("skipped", skipped))
	return nil
}

// GoBack leaves the return stage for the deliver view. Status is untouched.
func (s *Session) GoBack() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	if !Steps[s.viewing].CanGoBack || s.viewing == 0 {
		return fmt.Errorf("go back at %s: %w", s.viewing, ErrWrongStage)
	}
	s.viewing--
	return nil
}

// StepPress shows stage i. Only stages already reached can be shown.
func (s *Session) StepPress(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	if i < 0 || i >= len(Steps) || i > int(s.reached) {
		return fmt.Errorf("step %d: %w", i, ErrStepNotReachable)
	}
	s.viewing = Stage(i)
	return nil
}

// finishCollect moves the delivery to picked_up and the session to deliver.
// When optimistic, a failed write that is not a rejection is reported and
// the session still advances.
func (s *Session) finishCollect(ctx context.Context, optimistic bool, title, message string) error {
	d, ok := s.updater.Delivery(s.id)
	if !ok {
		return fmt.Errorf("collect %s: %w", s.id, ErrDeliveryNotFound)
	}
	updated := true
	switch d.Status {
	case models.DeliveryStatusPending, models.DeliveryStatusCollecting:
		if err := s.updater.UpdateDeliveryStatus(s.id, models.DeliveryStatusPickedUp); err != nil {
			if !optimistic || errors.Is(err, ErrIllegalTransition) || errors.Is(err, ErrDeliveryNotFound) {
				s.notifier.ShowError("Erro", "Não foi possível confirmar a coleta.")
				return fmt.Errorf("collect %s: %w", s.id, err)
			}
			s.log.Warn("status update failed, continuing", zap.Error(err))
			s.notifier.ShowInfo("Atenção", "Continuando para a entrega...")
			updated = false
		}
	}
	if updated {
		s.notifier.ShowSuccess(title, message)
	}
	if err := s.wait(ctx, s.delays.Navigate); err != nil {
		return err
	}
	s.mu.Lock()
	if s.reached < StageDeliver {
		s.reached = StageDeliver
	}
	s.viewing = StageDeliver
	s.mu.Unlock()
	s.log.Debug("collection done")
	return nil
}

// begin claims the session for an action at stage.
func (s *Session) begin(stage Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.usableLocked(); err != nil {
		return err
	}
	if s.busy {
		return ErrBusy
	}
	if s.finished || s.viewing != stage {
		return fmt.Errorf("%s requested while at %s: %w", stage, s.viewing, ErrWrongStage)
	}
	s.busy = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

func (s *Session) usableLocked() error {
	if s.ctx.Err() != nil {
		return ErrSessionClosed
	}
	return nil
}

func (s *Session) atReturnLocked() error {
	if err := s.usableLocked(); err != nil {
		return err
	}
	if s.finished || s.viewing != StageReturn {
		return fmt.Errorf("return counter at %s: %w", s.viewing, ErrWrongStage)
	}
	return nil
}

// wait sleeps for d unless ctx or the session is cancelled first.
func (s *Session) wait(ctx context.Context, d time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()
	if err := latency.Sleep(ctx, d); err != nil {
		if s.ctx.Err() != nil {
			return ErrSessionClosed
		}
		return err
	}
	return nil
}
