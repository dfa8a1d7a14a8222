package main

import (
	"context"
	"fmt"

	"hwidctl/internal/backup"
	"hwidctl/internal/config"
	"hwidctl/internal/device"
	"hwidctl/internal/execx"
	"hwidctl/internal/history"
	"hwidctl/internal/oplog"
	"hwidctl/internal/workflow"
	"hwidctl/pkg/logx"
)

// app wires the collaborators together once per invocation.
type app struct {
	cfg    *config.Config
	logSvc *logx.Service
	log    logx.Logger
	trail  *oplog.Log
	store  history.Store

	model     string
	manager   *backup.Manager
	engine    *workflow.Engine
	workflows []workflow.Workflow
}

func newApp(ctx context.Context, cfgPath string, cfgOptional bool) (*app, error) {
	cfg, err := config.Load(cfgPath, cfgOptional)
	if err != nil {
		return nil, err
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})

	trail, err := oplog.Open(cfg.Paths.OperationLog)
	if err != nil {
		_ = logSvc.Close()
		return nil, fmt.Errorf("open operation log: %w", err)
	}

	busy, err := config.ParseDurationField("history.busy_timeout", cfg.History.BusyTimeout)
	if err != nil {
		_ = trail.Close()
		_ = logSvc.Close()
		return nil, err
	}
	store, err := history.Open(history.Config{
		Driver:      cfg.History.Driver,
		Path:        cfg.History.Path,
		BusyTimeout: busy,
	}, log)
	if err != nil {
		_ = trail.Close()
		_ = logSvc.Close()
		return nil, fmt.Errorf("open history: %w", err)
	}

	runner := execx.System{}
	vpd := device.NewVPD(runner, cfg.Commands.VPDDump, cfg.Commands.VPDSet, log)
	wp := device.NewWriteProtect(runner, cfg.Commands.DisableWP, log)
	detector := device.NewModelDetector(runner, cfg.Commands.ModelQuery, cfg.Commands.DMIProductName, log)

	model := detector.Detect(ctx)
	log.Info("hardware model", logx.String("model", model))

	manager := backup.NewManager(vpd, cfg.Paths.Backup, log, trail)
	engine := workflow.NewEngine(log, store, model)
	workflows := workflow.Standard(manager, vpd, wp, trail)

	return &app{
		cfg:       cfg,
		logSvc:    logSvc,
		log:       log,
		trail:     trail,
		store:     store,
		model:     model,
		manager:   manager,
		engine:    engine,
		workflows: workflows,
	}, nil
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = a.trail.Close()
	_ = a.logSvc.Close()
}

// byName finds one of the standard workflows.
func (a *app) byName(name string) (workflow.Workflow, error) {
	for _, wf := range a.workflows {
		if wf.Name == name {
			return wf, nil
		}
	}
	return workflow.Workflow{}, fmt.Errorf("unknown workflow %q", name)
}
