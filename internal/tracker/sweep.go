package tracker

import (
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically finalizes pending-exit sessions whose grace period
// has elapsed. Pending state is durable data, not an in-flight timer, so a
// restarted process resumes finalization from the store alone.
type Sweeper struct {
	tracker  *Tracker
	logger   *zap.Logger
	interval time.Duration
	stopChan chan struct{}
}

func NewSweeper(t *Tracker, logger *zap.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		tracker:  t,
		logger:   logger,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start launches the sweep loop. One sweep runs immediately so sessions
// left pending across a restart are finalized without waiting a full tick.
func (s *Sweeper) Start() {
	go s.loop()
	s.logger.Info("sweeper started", zap.Duration("interval", s.interval))
}

func (s *Sweeper) Stop() {
	select {
	case <-s.stopChan:
		return
	default:
		close(s.stopChan)
	}
}

func (s *Sweeper) loop() {
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.logger.Info("sweeper shutting down")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	finalized, err := s.tracker.FinalizeDue()
	if err != nil {
		s.logger.Error("sweep failed", zap.Error(err))
		return
	}
	if finalized > 0 {
		s.logger.Info("sweep finalized sessions", zap.Int("count", finalized))
	}
}
