package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"productivity-tracker.com/productivity-tracker/internal/constants"
	apperrors "productivity-tracker.com/productivity-tracker/internal/errors"
	"productivity-tracker.com/productivity-tracker/internal/events"
	model "productivity-tracker.com/productivity-tracker/internal/models"
	repository "productivity-tracker.com/productivity-tracker/internal/repositories"
)

const (
	eventQueueSize = 128
	publishTimeout = 2 * time.Second
)

// TickFunc receives the remaining time after each elapsed tick.
type TickFunc func(minutes, seconds int, isBreak bool)

// CompleteFunc fires once when a session runs out naturally. It never fires after Stop.
type CompleteFunc func(isBreak bool)

type TimerPhase string

const (
	PhaseIdle    TimerPhase = "idle"
	PhaseRunning TimerPhase = "running"
)

// TimerState is a read-only snapshot of the tracker.
type TimerState struct {
	Phase            TimerPhase            `json:"phase"`
	Kind             constants.SessionType `json:"kind,omitempty"`
	SessionID        uint                  `json:"session_id,omitempty"`
	TaskID           *uint                 `json:"task_id,omitempty"`
	RemainingSeconds int                   `json:"remaining_seconds"`
	StartedAt        *time.Time            `json:"started_at,omitempty"`
	WorkSeconds      int                   `json:"work_seconds"`
	BreakSeconds     int                   `json:"break_seconds"`
}

type TimerOptions struct {
	WorkMinutes  int
	BreakMinutes int
	// TickInterval is one countdown second. Defaults to time.Second.
	TickInterval time.Duration
	Clock        Clock
	Logger       zerolog.Logger
}

// timerState is either idleState or *runningState.
type timerState interface {
	phase() TimerPhase
}

type idleState struct{}

func (idleState) phase() TimerPhase { return PhaseIdle }

type runningState struct {
	kind       constants.SessionType
	remaining  int
	planned    int
	sessionID  uint
	taskID     *uint
	startedAt  time.Time
	onTick     TickFunc
	onComplete CompleteFunc
	stop       chan struct{}
}

func (*runningState) phase() TimerPhase { return PhaseRunning }

func (r *runningState) isBreak() bool {
	return r.kind == constants.SessionBreak
}

type TimerService struct {
	mu           sync.Mutex
	state        timerState
	workSeconds  int
	breakSeconds int
	tick         time.Duration
	wg           sync.WaitGroup

	repo      *repository.SessionRepository
	publisher events.Publisher
	clock     Clock
	logger    zerolog.Logger

	// queue feeds dispatch so a slow publisher never delays the countdown.
	queue      chan events.Event
	queueMu    sync.Mutex
	closed     bool
	dispatched chan struct{}
}

func NewTimerService(repo *repository.SessionRepository, publisher events.Publisher, opts TimerOptions) *TimerService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	s := &TimerService{
		state:        idleState{},
		workSeconds:  constants.DefaultWorkDurationSeconds,
		breakSeconds: constants.DefaultBreakDurationSeconds,
		tick:         opts.TickInterval,
		repo:         repo,
		publisher:    publisher,
		clock:        orNow(opts.Clock),
		logger:       opts.Logger.With().Str("component", "timer").Logger(),
		queue:        make(chan events.Event, eventQueueSize),
		dispatched:   make(chan struct{}),
	}
	if opts.WorkMinutes > 0 {
		s.workSeconds = opts.WorkMinutes * 60
	}
	if opts.BreakMinutes > 0 {
		s.breakSeconds = opts.BreakMinutes * 60
	}
	if s.tick <= 0 {
		s.tick = time.Second
	}

	go s.dispatch()
	return s
}

// StartWork begins a work countdown. It returns false if a session is already running.
func (s *TimerService) StartWork(ctx context.Context, taskID *uint, onTick TickFunc, onComplete CompleteFunc) (bool, error) {
	return s.start(ctx, constants.SessionWork, taskID, onTick, onComplete)
}

// StartBreak begins a break countdown. It returns false if a session is already running.
func (s *TimerService) StartBreak(ctx context.Context, onTick TickFunc, onComplete CompleteFunc) (bool, error) {
	return s.start(ctx, constants.SessionBreak, nil, onTick, onComplete)
}

func (s *TimerService) start(
	ctx context.Context,
	kind constants.SessionType,
	taskID *uint,
	onTick TickFunc,
	onComplete CompleteFunc,
) (bool, error) {
	s.mu.Lock()

	if _, ok := s.state.(idleState); !ok {
		s.mu.Unlock()
		return false, nil
	}

	planned := s.workSeconds
	if kind == constants.SessionBreak {
		planned = s.breakSeconds
	}

	startedAt := s.clock()
	sessionID, err := s.repo.Open(ctx, taskID, kind, startedAt)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	run := &runningState{
		kind:       kind,
		remaining:  planned,
		planned:    planned,
		sessionID:  sessionID,
		taskID:     taskID,
		startedAt:  startedAt,
		onTick:     onTick,
		onComplete: onComplete,
		stop:       make(chan struct{}),
	}
	s.state = run

	s.wg.Add(1)
	go s.countdown(run)

	s.mu.Unlock()

	s.logger.Info().Str("kind", string(kind)).Uint("session_id", sessionID).Int("seconds", planned).Msg("timer started")
	s.publish(events.EventStarted, run, planned)
	return true, nil
}

func (s *TimerService) countdown(run *runningState) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-run.stop:
			return
		case <-ticker.C:
		}

		s.mu.Lock()
		if s.state != timerState(run) {
			s.mu.Unlock()
			return
		}
		run.remaining--
		remaining := run.remaining
		s.mu.Unlock()

		if run.onTick != nil {
			run.onTick(remaining/60, remaining%60, run.isBreak())
		}
		s.publish(events.EventTick, run, remaining)

		if remaining > 0 {
			continue
		}

		if s.expire(run) {
			if run.onComplete != nil {
				run.onComplete(run.isBreak())
			}
			s.publish(events.EventCompleted, run, 0)
		}
		return
	}
}

// expire finalizes a naturally finished session. It reports false when Stop won the race.
func (s *TimerService) expire(run *runningState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != timerState(run) {
		return false
	}

	if err := s.repo.Finalize(context.Background(), run.sessionID, s.clock(), run.planned); err != nil {
		s.logger.Error().Err(err).Uint("session_id", run.sessionID).Msg("failed to finalize expired session")
	}
	s.state = idleState{}

	s.logger.Info().Str("kind", string(run.kind)).Uint("session_id", run.sessionID).Msg("timer completed")
	return true
}

// Stop finalizes the running session with its wall-clock elapsed time. It is a
// no-op while idle and never triggers the completion callback.
func (s *TimerService) Stop(ctx context.Context) error {
	s.mu.Lock()

	run, ok := s.state.(*runningState)
	if !ok {
		s.mu.Unlock()
		return nil
	}

	now := s.clock()
	elapsed := int(now.Sub(run.startedAt).Seconds())
	err := s.repo.Finalize(ctx, run.sessionID, now, elapsed)

	s.state = idleState{}
	close(run.stop)
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.logger.Info().Str("kind", string(run.kind)).Uint("session_id", run.sessionID).Int("elapsed", elapsed).Msg("timer stopped")
	s.publish(events.EventStopped, run, run.planned-elapsed)
	return nil
}

// Remaining returns (0, 0) while idle.
func (s *TimerService) Remaining() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.state.(*runningState)
	if !ok {
		return 0, 0
	}
	return run.remaining / 60, run.remaining % 60
}

// Configure changes durations for sessions started afterwards.
func (s *TimerService) Configure(workMinutes, breakMinutes int) error {
	if workMinutes <= 0 || breakMinutes <= 0 {
		return apperrors.ErrInvalidDurations
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.workSeconds = workMinutes * 60
	s.breakSeconds = breakMinutes * 60
	return nil
}

func (s *TimerService) State() TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := TimerState{
		Phase:        s.state.phase(),
		WorkSeconds:  s.workSeconds,
		BreakSeconds: s.breakSeconds,
	}
	if run, ok := s.state.(*runningState); ok {
		startedAt := run.startedAt
		state.Kind = run.kind
		state.SessionID = run.sessionID
		state.TaskID = run.taskID
		state.RemainingSeconds = run.remaining
		state.StartedAt = &startedAt
	}
	return state
}

// Shutdown stops any running session, waits for the countdown to exit and
// flushes queued events. Events published afterwards are discarded.
func (s *TimerService) Shutdown(ctx context.Context) error {
	err := s.Stop(ctx)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn().Msg("timer shutdown timed out")
		return err
	}

	s.closeQueue()

	select {
	case <-s.dispatched:
	case <-ctx.Done():
		s.logger.Warn().Msg("timer event flush timed out")
	}
	return err
}

// Statistics aggregates finalized sessions started within the trailing window.
func (s *TimerService) Statistics(ctx context.Context, days int) (*model.TimeStatistics, error) {
	if days <= 0 {
		return nil, apperrors.ErrInvalidDays
	}

	now := s.clock()
	sessions, err := s.repo.ListFinishedSince(ctx, now.AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}

	total := 0
	byType := make(map[constants.SessionType]int)
	daily := make(map[string]int)
	for _, session := range sessions {
		total += session.Duration
		byType[session.SessionType] += session.Duration
		daily[dateKey(session.StartTime.In(now.Location()))] += session.Duration
	}

	breakdown := make([]model.DailyTime, 0, len(daily))
	for date, seconds := range daily {
		breakdown = append(breakdown, model.DailyTime{Date: date, TotalTime: seconds})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].Date > breakdown[j].Date
	})
	if len(breakdown) > 7 {
		breakdown = breakdown[:7]
	}

	return &model.TimeStatistics{
		TotalTimeMinutes:  total / 60,
		TimeByTypeSeconds: byType,
		DailyBreakdown:    breakdown,
	}, nil
}

// publish enqueues without blocking. A full queue drops the event.
func (s *TimerService) publish(typ events.EventType, run *runningState, remaining int) {
	event := events.NewEvent(typ, run.kind, run.sessionID, max(remaining, 0), s.clock())

	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.queue <- event:
	default:
		s.logger.Warn().Str("event", string(typ)).Uint("session_id", run.sessionID).Msg("timer event queue full, dropping event")
	}
}

func (s *TimerService) dispatch() {
	defer close(s.dispatched)

	for event := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn().Err(err).Str("event", string(event.Type)).Msg("failed to publish timer event")
		}
		cancel()
	}
}

func (s *TimerService) closeQueue() {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.queue)
	}
}
