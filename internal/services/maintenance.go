package services

import (
	"context"
	"time"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/logger"
	"github.com/robfig/cron/v3"
)

const resetTokenCleanupSchedule = "@every 1h"

// MaintenanceService runs periodic housekeeping jobs.
type MaintenanceService struct {
	auth          *AuthService
	cronScheduler *cron.Cron
}

func NewMaintenanceService(auth *AuthService) *MaintenanceService {
	return &MaintenanceService{auth: auth}
}

func (s *MaintenanceService) StartScheduler() error {
	s.cronScheduler = cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := s.cronScheduler.AddFunc(resetTokenCleanupSchedule, s.PurgeResetTokens); err != nil {
		return err
	}
	s.cronScheduler.Start()
	logger.Infof("[Maintenance] Scheduler started (reset tokens: %s)", resetTokenCleanupSchedule)
	return nil
}

func (s *MaintenanceService) StopScheduler() {
	if s.cronScheduler != nil {
		<-s.cronScheduler.Stop().Done()
	}
}

// PurgeResetTokens clears expired password reset tokens.
func (s *MaintenanceService) PurgeResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.auth.PurgeExpiredResetTokens(ctx)
	if err != nil {
		logger.Errorf("[Maintenance] Failed to purge reset tokens: %v", err)
		return
	}
	if n > 0 {
		logger.Infof("[Maintenance] Cleared %d expired reset tokens", n)
	}
}
