package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"uicss/preset"
	"uicss/theme"
)

func newLocalEnv() *LocalEnv {
	return &LocalEnv{start: time.Now()}
}

// PreparePreset builds preset from configuration: loads partial theme and
// replacement preflight when configured. Files used end up in debug report.
func (e *LocalEnv) PreparePreset() (*preset.Preset, error) {
	if e.Preset != nil {
		return e.Preset, nil
	}
	if e.Cfg == nil {
		return nil, fmt.Errorf("configuration is not loaded")
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	conf := e.Cfg.Preset
	opts := preset.Options{
		ColorSpace: conf.ColorSpace,
		Preflights: &conf.Preflights,
		Safelist:   &conf.Safelist,
		Shortcuts:  conf.Shortcuts,
	}

	if len(conf.ThemePath) > 0 {
		partial, err := theme.Load(conf.ThemePath)
		if err != nil {
			return nil, fmt.Errorf("unable to load theme: %w", err)
		}
		opts.Theme = partial
		if err := e.Rpt.StoreCopy("theme/"+filepath.Base(conf.ThemePath), conf.ThemePath); err != nil {
			log.Warn("Unable to store theme in report", zap.Error(err))
		}
		log.Debug("Theme loaded", zap.String("path", conf.ThemePath))
	}

	if conf.Preflights && len(conf.PreflightPath) > 0 {
		data, err := os.ReadFile(conf.PreflightPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read preflight: %w", err)
		}
		opts.PreflightCSS = data
		e.Rpt.StoreData("preflight/"+filepath.Base(conf.PreflightPath), data)
		log.Debug("Preflight loaded", zap.String("path", conf.PreflightPath))
	}

	e.Preset = preset.New(opts)
	return e.Preset, nil
}
