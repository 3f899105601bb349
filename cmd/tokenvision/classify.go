package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/neurlang/tokenvision/config"
	"github.com/neurlang/tokenvision/imageio"
	"github.com/neurlang/tokenvision/inference"
	"github.com/neurlang/tokenvision/ranking"
	"github.com/neurlang/tokenvision/visualize"
)

func runClassify(ctx context.Context, cfg config.Classify, out io.Writer) error {
	sw := visualize.StartStopwatch()
	logrus.WithFields(inference.CPUFields()).Debug("host")

	model, err := inference.Load(cfg.Model)
	if err != nil {
		return err
	}
	if err := model.CheckInput(cfg.InputSize); err != nil {
		return err
	}
	model.SetWorkers(cfg.Workers)

	labels, err := ranking.ReadLabels(cfg.Labels)
	if err != nil {
		return err
	}
	if len(labels) < model.OutputDims() {
		return errors.Wrapf(ranking.ErrTooFewLabels, "%s has %d labels, model has %d outputs",
			cfg.Labels, len(labels), model.OutputDims())
	}
	logrus.WithFields(logrus.Fields{
		"model":   cfg.Model,
		"outputs": model.OutputDims(),
		"elapsed": sw.Lap(),
	}).Info("model loaded")

	files, err := imageio.List(cfg.Path)
	if err != nil {
		return err
	}
	width, height := model.InputDims()
	for _, file := range files {
		input, err := imageio.Load(file, width, height)
		if err != nil {
			return err
		}
		values, err := model.Evaluate(ctx, input)
		if err != nil {
			logrus.WithField("file", file).WithError(err).Error("model evaluation failed")
			return errors.Wrapf(err, "evaluating %s", file)
		}
		top, err := ranking.TopK(values, labels, cfg.Top)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", file)
		for i, p := range top {
			fmt.Fprintf(out, "  %d. %s\n", i+1, p)
		}
		logrus.WithFields(logrus.Fields{"file": file, "elapsed": sw.Lap()}).Debug("classified")
	}
	logrus.WithFields(logrus.Fields{"images": len(files), "elapsed": sw.Elapsed()}).Info("classification finished")
	return nil
}
