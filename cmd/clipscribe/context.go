package main

import (
	"strings"
	"sync"

	"clipscribe/internal/config"
	"clipscribe/internal/history"
	"clipscribe/internal/logging"
	"clipscribe/internal/media"
	"clipscribe/internal/refine"
	"clipscribe/internal/registry"
	"clipscribe/internal/store"
	"clipscribe/internal/transcribe"
	"clipscribe/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// components holds the wired pipeline for one command invocation. The store
// lock is held for the component lifetime; withComponents releases it when
// the command returns.
type components struct {
	cfg        *config.Config
	store      *store.Store
	history    *history.Log
	reconciler *registry.Reconciler
	processor  *workflow.Processor
}

func (c *commandContext) withComponents(fn func(*components) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	log := history.NewLog(st, logger)
	reconciler := registry.NewReconciler(cfg, st, log, logger)
	adapter := transcribe.NewAdapter(
		transcribe.NewWhisper(cfg.Whisper),
		transcribe.NewCloud(cfg.Cloud),
		log,
		logger,
	)
	processor := workflow.NewProcessor(
		cfg,
		st,
		reconciler,
		log,
		media.NewExtractor(cfg.FFmpegBinary()),
		adapter,
		refine.NewClient(cfg.LLM),
		logger,
	)

	return fn(&components{
		cfg:        cfg,
		store:      st,
		history:    log,
		reconciler: reconciler,
		processor:  processor,
	})
}
