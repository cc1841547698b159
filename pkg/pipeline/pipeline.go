package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/releasetrain/releasetrain-api/pkg/contracts"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Stage is one named unit of work in the pipeline; it only starts once every
// stage named in DependsOn has succeeded
type Stage struct {
	Name      string
	DependsOn []string
	Timeout   time.Duration
	Run       func(ctx context.Context) error
}

// Pipeline executes a static stage graph, running independent stages
// concurrently and skipping the dependents of any failed stage
type Pipeline struct {
	stages              []Stage
	maxConcurrentStages int64
}

// New validates the stage graph and returns a pipeline ready to run
func New(maxConcurrentStages int64, stages ...Stage) (*Pipeline, error) {

	if len(stages) == 0 {
		return nil, errors.New("a pipeline needs at least one stage")
	}
	if maxConcurrentStages <= 0 {
		maxConcurrentStages = 1
	}

	stagesByName := map[string]Stage{}
	for _, s := range stages {
		if s.Name == "" {
			return nil, errors.New("a stage needs a non-empty name")
		}
		if s.Run == nil {
			return nil, errors.Errorf("stage %v has no run function", s.Name)
		}
		if _, ok := stagesByName[s.Name]; ok {
			return nil, errors.Errorf("stage %v is defined more than once", s.Name)
		}
		stagesByName[s.Name] = s
	}

	for _, s := range stages {
		for _, dep := range s.DependsOn {
			if _, ok := stagesByName[dep]; !ok {
				return nil, errors.Errorf("stage %v depends on unknown stage %v", s.Name, dep)
			}
		}
	}

	if err := detectCycles(stagesByName); err != nil {
		return nil, err
	}

	return &Pipeline{
		stages:              stages,
		maxConcurrentStages: maxConcurrentStages,
	}, nil
}

// detectCycles walks the dependency edges depth-first; seeing a stage twice on
// the same path means the graph isn't acyclic
func detectCycles(stagesByName map[string]Stage) error {

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)

	state := map[string]int{}

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return errors.Errorf("stage %v is part of a dependency cycle", name)
		case done:
			return nil
		}

		state[name] = visiting
		for _, dep := range stagesByName[name].DependsOn {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done

		return nil
	}

	for name := range stagesByName {
		if err := visit(name); err != nil {
			return err
		}
	}

	return nil
}

// Run executes all stages against the passed run record; it returns the first
// stage error, with per-stage outcomes recorded on the run itself
func (p *Pipeline) Run(ctx context.Context, run *contracts.PipelineRun) error {

	var mutex sync.Mutex

	stageRuns := map[string]*contracts.StageRun{}
	finished := map[string]chan struct{}{}

	run.StartedAt = time.Now().UTC()
	run.Status = contracts.StatusRunning
	run.Stages = make([]*contracts.StageRun, 0, len(p.stages))
	for _, s := range p.stages {
		stageRun := &contracts.StageRun{
			Name:   s.Name,
			Status: contracts.StatusPending,
		}
		run.Stages = append(run.Stages, stageRun)
		stageRuns[s.Name] = stageRun
		finished[s.Name] = make(chan struct{})
	}

	setStatus := func(name string, status contracts.Status, errorDetails string) {
		mutex.Lock()
		defer mutex.Unlock()

		stageRun := stageRuns[name]
		stageRun.Status = status
		if errorDetails != "" {
			stageRun.ErrorDetails = errorDetails
		}
		now := time.Now().UTC()
		if status == contracts.StatusRunning {
			stageRun.StartedAt = &now
		} else if stageRun.StartedAt != nil && stageRun.FinishedAt == nil {
			stageRun.FinishedAt = &now
		}
	}

	getStatus := func(name string) contracts.Status {
		mutex.Lock()
		defer mutex.Unlock()

		return stageRuns[name].Status
	}

	// limit concurrency using a semaphore
	sem := semaphore.NewWeighted(p.maxConcurrentStages)
	g := new(errgroup.Group)

	for _, s := range p.stages {
		stage := s
		g.Go(func() error {
			defer close(finished[stage.Name])

			// wait for all predecessors to reach a terminal status
			for _, dep := range stage.DependsOn {
				select {
				case <-finished[dep]:
				case <-ctx.Done():
					setStatus(stage.Name, contracts.StatusCanceled, ctx.Err().Error())
					return errors.Wrapf(ctx.Err(), "stage %v canceled", stage.Name)
				}

				if !getStatus(dep).Success() {
					log.Info().
						Str("stage", stage.Name).
						Str("predecessor", dep).
						Msgf("Skipping stage %v because predecessor %v did not succeed", stage.Name, dep)
					setStatus(stage.Name, contracts.StatusSkipped, fmt.Sprintf("predecessor %v did not succeed", dep))
					return nil
				}
			}

			if err := sem.Acquire(ctx, 1); err != nil {
				setStatus(stage.Name, contracts.StatusCanceled, err.Error())
				return errors.Wrapf(err, "stage %v canceled", stage.Name)
			}
			defer sem.Release(1)

			return p.runStage(ctx, stage, setStatus)
		})
	}

	err := g.Wait()

	now := time.Now().UTC()
	mutex.Lock()
	run.FinishedAt = &now
	mutex.Unlock()
	run.Status = run.AggregateStatus()

	return err
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, setStatus func(name string, status contracts.Status, errorDetails string)) error {

	stageCtx := ctx
	if stage.Timeout > 0 {
		var cancel context.CancelFunc
		stageCtx, cancel = context.WithTimeout(ctx, stage.Timeout)
		defer cancel()
	}

	log.Info().Str("stage", stage.Name).Msgf("Starting stage %v...", stage.Name)
	setStatus(stage.Name, contracts.StatusRunning, "")

	start := time.Now()
	err := stage.Run(stageCtx)
	duration := time.Since(start)

	if err != nil {
		log.Warn().Err(err).
			Str("stage", stage.Name).
			Dur("duration", duration).
			Msgf("Stage %v failed", stage.Name)
		setStatus(stage.Name, contracts.StatusFailed, err.Error())
		return errors.Wrapf(err, "stage %v failed", stage.Name)
	}

	log.Info().
		Str("stage", stage.Name).
		Dur("duration", duration).
		Msgf("Finished stage %v successfully", stage.Name)
	setStatus(stage.Name, contracts.StatusSucceeded, "")

	return nil
}
