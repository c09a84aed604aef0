package services

import (
	"Folio/internal/authz"
	"Folio/internal/config"
	"Folio/internal/domain"
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// JanitorReport is the outcome of one janitor cycle.
type JanitorReport struct {
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Forced     bool             `json:"forced"`
	Sweep      SweepResult      `json:"sweep"`
	Duplicates []DuplicateGroup `json:"duplicates"`
	Repair     *Report          `json:"repair,omitempty"`
	Errors     []string         `json:"errors"`
}

type Janitor struct {
	reconcileService ReconcileService
	sweepService     SweepService
	configuration    *config.Configuration
	logService       LogService
	running          bool
	latest           *JanitorReport
	mutex            sync.Mutex
	cron             *cron.Cron
}

func NewJanitorService(
	reconcileService ReconcileService,
	sweepService SweepService,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	return &Janitor{
		reconcileService: reconcileService,
		sweepService:     sweepService,
		logService:       logService,
		configuration:    configuration,
		cron:             cron.New(),
	}
}

// Start schedules the cycle on janitor.schedule.
func (j *Janitor) Start() error {
	_, err := j.cron.AddFunc(j.configuration.Janitor.Schedule, func() {
		if !j.begin() {
			return
		}
		j.runCycle(false)
	})
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "janitor",
			"error": err.Error(),
		}).Error("failed to schedule janitor")
		return err
	}
	j.cron.Start()
	j.logService.Log.WithFields(logrus.Fields{
		"job":  "janitor",
		"cron": j.configuration.Janitor.Schedule,
	}).Info("janitor scheduled")
	return nil
}

func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
	j.logService.Log.WithFields(logrus.Fields{
		"job":    "janitor",
		"status": "stopped",
	}).Info("janitor stopped")
}

// ForceStartCycle runs a cycle in the background.
func (j *Janitor) ForceStartCycle() error {
	if !j.begin() {
		return domain.ErrCycleInProgress
	}
	go j.runCycle(true)
	return nil
}

// RunCycle runs a cycle and waits for it.
func (j *Janitor) RunCycle() (*JanitorReport, error) {
	if !j.begin() {
		return nil, domain.ErrCycleInProgress
	}
	return j.runCycle(true), nil
}

func (j *Janitor) IsRunning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.running
}

func (j *Janitor) LatestReport() *JanitorReport {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.latest == nil {
		return nil
	}
	report := *j.latest
	return &report
}

func (j *Janitor) begin() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	if j.running {
		return false
	}
	j.running = true
	return true
}

func (j *Janitor) runCycle(forced bool) *JanitorReport {
	ctx := context.Background()
	report := &JanitorReport{StartedAt: time.Now(), Forced: forced, Duplicates: []DuplicateGroup{}, Errors: []string{}}
	defer func() {
		report.FinishedAt = time.Now()
		j.mutex.Lock()
		j.latest = report
		j.running = false
		j.mutex.Unlock()
	}()

	logFields := logrus.Fields{"job": "janitor", "status": "start", "cron": j.configuration.Janitor.Schedule}
	if forced {
		logFields = logrus.Fields{"job": "janitor", "status": "forced"}
	}
	j.logService.Log.WithFields(logFields).Debug("janitor cycle started")

	sweep, err := j.sweepService.Sweep(ctx, j.configuration.Janitor.SweepLimit)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		j.logError("sweep", err)
	}
	report.Sweep = sweep

	system := authz.System()
	groups, err := j.reconcileService.Scan(ctx, system)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
		j.logError("scan", err)
		return report
	}
	report.Duplicates = groups
	for _, group := range groups {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "janitor",
			"scope": group.ScopeKey,
			"roots": len(group.RootIDs),
		}).Warn("duplicate root folders detected")
	}

	if len(groups) > 0 && j.configuration.Janitor.AutoRepair {
		repair, err := j.reconcileService.ReconcileAll(ctx, system)
		report.Repair = repair
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			j.logError("repair", err)
		}
	}

	j.logService.Log.WithFields(logrus.Fields{
		"job":        "janitor",
		"status":     "success",
		"swept":      report.Sweep.Deleted,
		"duplicates": len(report.Duplicates),
	}).Info("janitor cycle finished")
	return report
}

func (j *Janitor) logError(step string, err error) {
	j.logService.Log.WithFields(logrus.Fields{
		"job":    "janitor",
		"step":   step,
		"status": "error",
		"error":  err.Error(),
	}).Error("janitor step failed")
}
