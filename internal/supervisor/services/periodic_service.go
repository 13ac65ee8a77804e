// Foodgram - Recipe Sharing and Shopping Lists
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package services

import (
	"context"
	"time"

	"github.com/tomtom215/foodgram/internal/logging"
)

// Task is one unit of periodic work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// PeriodicService runs its tasks every interval. A failing task is logged
// and does not stop the others or the service.
type PeriodicService struct {
	name     string
	interval time.Duration
	tasks    []Task
}

// NewPeriodicService creates the service. interval defaults to one minute.
func NewPeriodicService(name string, interval time.Duration, tasks ...Task) *PeriodicService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PeriodicService{name: name, interval: interval, tasks: tasks}
}

// Serve implements suture.Service.
func (p *PeriodicService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *PeriodicService) runOnce(ctx context.Context) {
	for _, task := range p.tasks {
		start := time.Now()
		if err := task.Run(ctx); err != nil {
			logging.Warn().Err(err).Str("periodic", p.name).Str("task", task.Name).Msg("Periodic task failed")
			continue
		}
		logging.Debug().Str("periodic", p.name).Str("task", task.Name).Dur("duration", time.Since(start)).Msg("Periodic task completed")
	}
}

func (p *PeriodicService) String() string {
	return p.name
}
