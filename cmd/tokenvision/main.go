package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/neurlang/tokenvision/config"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		logrus.WithError(err).Fatal("cannot load environment")
	}
	cfg := config.New()
	command, err := cfg.Parse(os.Args[1:])
	if err != nil {
		cfg.App().FatalUsage("%s\n", err)
	}

	level, err := cfg.Level()
	if err != nil {
		logrus.WithError(err).Warn("using info log level")
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch command {
	case config.ClassifyCommand:
		err = runClassify(ctx, cfg.Classify, os.Stdout)
	case config.VisualizeCommand:
		err = runVisualize(ctx, cfg.Visualize)
	default:
		cfg.App().FatalUsage("unknown command %q\n", command)
	}
	if err != nil {
		stop()
		logrus.WithError(err).Fatalf("%s failed", command)
	}
}
