package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/neurlang/tokenvision/config"
	"github.com/neurlang/tokenvision/sink"
	"github.com/neurlang/tokenvision/visualize"
)

func newSink(cfg config.Visualize) (sink.Sink, error) {
	if cfg.UseObjectStore() {
		return sink.NewObject(cfg.S3)
	}
	return sink.NewDir(cfg.Out)
}

func runVisualize(ctx context.Context, cfg config.Visualize) error {
	encode, err := cfg.EncodeOptions()
	if err != nil {
		return err
	}
	out, err := newSink(cfg)
	if err != nil {
		return err
	}
	v, err := visualize.New(out, visualize.Options{
		Encode:    encode,
		Size:      cfg.Size,
		Ext:       cfg.Ext,
		Workers:   cfg.Workers,
		CacheSize: cfg.Cache,
	}, logrus.StandardLogger())
	if err != nil {
		return err
	}
	report, err := v.Run(ctx, cfg.Dir)
	if err != nil {
		return err
	}
	return report.Err()
}
