package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/faize-ai/vagrant-helpers/internal/configure"
	"github.com/faize-ai/vagrant-helpers/internal/hostpath"
	"github.com/faize-ai/vagrant-helpers/internal/network"
	"github.com/faize-ai/vagrant-helpers/internal/opts"
	"github.com/faize-ai/vagrant-helpers/internal/vagrantfile"
)

// pass is the result of one configuration run.
type pass struct {
	runID  string
	doc    *opts.Document
	config *vagrantfile.Config
}

// hostInterfaces is swapped out in tests.
var hostInterfaces = network.NewHostInterfaces

// runPass loads the env file and options from the base directory and
// configures every machine they describe.
func runPass() (*pass, error) {
	runID := uuid.New().String()
	log := logger.WithField("run_id", runID)

	loaded, err := opts.LoadEnv(settings.Dir, settings.EnvFile)
	if err != nil {
		return nil, err
	}
	if loaded {
		log.WithField("file", settings.EnvFile).Debug("env file loaded")
	}

	doc, err := opts.Load(settings.Dir, settings.OptsOverride())
	if err != nil {
		return nil, err
	}
	log.WithField("path", doc.Path).Debug("opts file loaded")

	matcher := network.NewMatcher(network.NewEnumerator(hostInterfaces()), log)
	translator := hostpath.NewTranslator(settings.PathTranslator, settings.Dir)
	configurator := configure.New(matcher, translator, log)

	cfg := vagrantfile.New()
	if err := configurator.Run(doc, cfg, cfg.Define); err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Path, err)
	}

	log.WithFields(logrus.Fields{
		"machines": len(cfg.Summaries()),
	}).Debug("configuration complete")

	return &pass{runID: runID, doc: doc, config: cfg}, nil
}
