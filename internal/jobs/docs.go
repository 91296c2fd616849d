// Package jobs provides scheduled background tasks for the routing service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. RoutePlanningJob - Runs every morning to plan routes for the current
// service date from the unassigned stop backlog.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(planRoutesHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A planning run that produces zero routes is a business outcome, not a
// system failure; the job logs it at warning level and tries again on the
// next tick. Anything else is logged as an error.
package jobs
