package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/latch-net/latch-be/internal/controller"
	"github.com/latch-net/latch-be/internal/dispatch"
	"github.com/latch-net/latch-be/internal/metrics"
	"github.com/latch-net/latch-be/internal/model"
	"github.com/latch-net/latch-be/internal/repository"
)

type commandService struct {
	dispatcher  *dispatch.Dispatcher
	controller  *controller.LockController
	commandRepo repository.ICommandRepository
	limiter     *rate.Limiter
	measures    *metrics.CommandMeasures
	logger      *log.Logger

	// Serializes access to the dispatcher's stored configs and callbacks.
	// The dispatcher has its own single-flight gate, but a rejected send
	// fires neither callback, so the service fronts it with a lock that can
	// report the busy condition to API clients.
	mu sync.Mutex
}

func NewCommandService(
	d *dispatch.Dispatcher,
	c *controller.LockController,
	commandRepo repository.ICommandRepository,
	limiter *rate.Limiter,
	measures *metrics.CommandMeasures,
	logger *log.Logger,
) ICommandService {
	return &commandService{
		dispatcher:  d,
		controller:  c,
		commandRepo: commandRepo,
		limiter:     limiter,
		measures:    measures,
		logger:      logger,
	}
}

func (s *commandService) Lock(ctx context.Context, userID int) (*model.DTOCommandResult, error) {
	return s.run(ctx, userID, model.ActionLock, func(ctx context.Context) (*dispatch.ConnectionConfig, *dispatch.MessageConfig) {
		s.controller.TriggerLock(ctx)
		return s.dispatcher.Connection(), s.dispatcher.Message()
	})
}

func (s *commandService) Unlock(ctx context.Context, userID int) (*model.DTOCommandResult, error) {
	return s.run(ctx, userID, model.ActionUnlock, func(ctx context.Context) (*dispatch.ConnectionConfig, *dispatch.MessageConfig) {
		s.controller.TriggerUnlock(ctx)
		return s.dispatcher.Connection(), s.dispatcher.Message()
	})
}

func (s *commandService) Send(ctx context.Context, userID int, req *model.DTOSendRequest) (*model.DTOCommandResult, error) {
	var (
		method    dispatch.Method
		hasMethod bool
	)
	if req.Method != "" {
		m, err := dispatch.ParseMethod(req.Method)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		method = m
		hasMethod = true
	}

	return s.run(ctx, userID, model.ActionCustom, func(ctx context.Context) (*dispatch.ConnectionConfig, *dispatch.MessageConfig) {
		// Transient configs cloned from the stored pair: overrides apply to
		// this call only and never leak into the device defaults.
		conn := s.dispatcher.Connection().Clone()
		conn.SetPath(req.Path)
		if req.Host != "" {
			conn.SetHost(req.Host)
		}
		if req.Port != 0 {
			conn.SetPort(req.Port)
		}
		if req.APIKey != "" {
			conn.SetAPIKey(req.APIKey)
		}

		msg := s.dispatcher.Message().Clone()
		msg.SetPayload(req.Payload)
		if hasMethod {
			msg.SetMethod(method)
		}
		if req.ContentType != "" {
			msg.SetContentType(req.ContentType)
		}
		if req.TimeoutMs > 0 {
			msg.SetTimeout(time.Duration(req.TimeoutMs) * time.Millisecond)
		}

		s.dispatcher.SendWith(ctx, conn, msg)
		return conn, msg
	})
}

func (s *commandService) History(ctx context.Context, userID int) ([]*model.CommandRecord, error) {
	return s.commandRepo.GetByUserID(ctx, userID)
}

// run fires one command through the dispatcher and turns its callback
// outcome into a result DTO, a history row and metric updates. fire must
// dispatch exactly once and return the configs it dispatched with.
func (s *commandService) run(ctx context.Context, userID int, action string, fire func(ctx context.Context) (*dispatch.ConnectionConfig, *dispatch.MessageConfig)) (*model.DTOCommandResult, error) {
	if !s.limiter.Allow() {
		return nil, ErrRateLimited
	}
	if !s.mu.TryLock() {
		return nil, ErrDeviceBusy
	}
	defer s.mu.Unlock()

	var (
		fired   bool
		success bool
		message string
	)
	s.dispatcher.OnSuccess = func(body string) {
		fired = true
		success = true
		message = body
	}
	s.dispatcher.OnFailure = func(reason string) {
		fired = true
		message = reason
	}

	s.measures.InFlight.Inc()
	startTime := time.Now()
	conn, msg := fire(ctx)
	duration := time.Since(startTime)
	s.measures.InFlight.Dec()

	if !fired {
		// The dispatcher dropped the send without firing either callback,
		// which only happens when another command is in flight.
		return nil, ErrDeviceBusy
	}

	outcome := metrics.OutcomeFailure
	if success {
		outcome = metrics.OutcomeSuccess
	}
	s.measures.Commands.WithLabelValues(action, outcome).Inc()
	s.measures.Duration.WithLabelValues(action).Observe(duration.Seconds())

	payload := msg.Payload()
	record := &model.CommandRecord{
		UserID:     &userID,
		Action:     action,
		Method:     msg.Method().String(),
		URL:        conn.ConstructURL(),
		Payload:    &payload,
		Success:    success,
		Result:     &message,
		DurationMs: int(duration.Milliseconds()),
	}
	if err := s.commandRepo.Create(ctx, record); err != nil {
		// History is best-effort: the command already ran, so the outcome
		// is still reported to the caller.
		s.logger.Printf("ERROR: failed to record %s command: %v", action, err)
	}

	return &model.DTOCommandResult{
		Action:     action,
		Success:    success,
		Message:    message,
		DurationMs: int(duration.Milliseconds()),
		ExecutedAt: startTime,
	}, nil
}
