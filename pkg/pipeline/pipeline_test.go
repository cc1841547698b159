package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/releasetrain/releasetrain-api/pkg/contracts"
	"github.com/stretchr/testify/assert"
)

func noop(ctx context.Context) error {
	return nil
}

func TestNew(t *testing.T) {

	t.Run("ReturnsErrorForPipelineWithoutStages", func(t *testing.T) {

		// act
		_, err := New(4)

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorForStageWithoutName", func(t *testing.T) {

		// act
		_, err := New(4, Stage{Name: "", Run: noop})

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorForDuplicateStageName", func(t *testing.T) {

		// act
		_, err := New(4,
			Stage{Name: "test", Run: noop},
			Stage{Name: "test", Run: noop},
		)

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorForUnknownPredecessor", func(t *testing.T) {

		// act
		_, err := New(4,
			Stage{Name: "publish-package", DependsOn: []string{"test"}, Run: noop},
		)

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorForDependencyCycle", func(t *testing.T) {

		// act
		_, err := New(4,
			Stage{Name: "a", DependsOn: []string{"c"}, Run: noop},
			Stage{Name: "b", DependsOn: []string{"a"}, Run: noop},
			Stage{Name: "c", DependsOn: []string{"b"}, Run: noop},
		)

		assert.NotNil(t, err)
	})

	t.Run("ReturnsPipelineForValidGraph", func(t *testing.T) {

		// act
		p, err := New(4,
			Stage{Name: "test", Run: noop},
			Stage{Name: "publish-package", DependsOn: []string{"test"}, Run: noop},
		)

		assert.Nil(t, err)
		assert.NotNil(t, p)
	})
}

func TestRun(t *testing.T) {

	t.Run("RunsStagesInDependencyOrder", func(t *testing.T) {

		var mutex sync.Mutex
		executed := []string{}
		record := func(name string) func(ctx context.Context) error {
			return func(ctx context.Context) error {
				mutex.Lock()
				defer mutex.Unlock()
				executed = append(executed, name)
				return nil
			}
		}

		p, err := New(4,
			Stage{Name: "test", Run: record("test")},
			Stage{Name: "publish-package", DependsOn: []string{"test"}, Run: record("publish-package")},
			Stage{Name: "await-package", DependsOn: []string{"publish-package"}, Run: record("await-package")},
		)
		assert.Nil(t, err)

		run := &contracts.PipelineRun{}

		// act
		err = p.Run(context.Background(), run)

		assert.Nil(t, err)
		assert.Equal(t, []string{"test", "publish-package", "await-package"}, executed)
		assert.Equal(t, contracts.StatusSucceeded, run.Status)
	})

	t.Run("RunsIndependentStagesConcurrently", func(t *testing.T) {

		oneStarted := make(chan struct{})
		twoStarted := make(chan struct{})

		awaitOther := func(own chan struct{}, other chan struct{}) func(ctx context.Context) error {
			return func(ctx context.Context) error {
				close(own)
				select {
				case <-other:
					return nil
				case <-time.After(5 * time.Second):
					return errors.New("the other root stage never started")
				}
			}
		}

		p, err := New(4,
			Stage{Name: "test", Run: awaitOther(oneStarted, twoStarted)},
			Stage{Name: "verify-install", Run: awaitOther(twoStarted, oneStarted)},
		)
		assert.Nil(t, err)

		run := &contracts.PipelineRun{}

		// act
		err = p.Run(context.Background(), run)

		assert.Nil(t, err)
		assert.Equal(t, contracts.StatusSucceeded, run.Status)
	})

	t.Run("SkipsTransitiveDependentsOfFailedStage", func(t *testing.T) {

		p, err := New(4,
			Stage{Name: "test", Run: noop},
			Stage{Name: "publish-package", DependsOn: []string{"test"}, Run: func(ctx context.Context) error {
				return errors.New("upload rejected")
			}},
			Stage{Name: "await-package", DependsOn: []string{"publish-package"}, Run: noop},
			Stage{Name: "publish-image", DependsOn: []string{"await-package"}, Run: noop},
		)
		assert.Nil(t, err)

		run := &contracts.PipelineRun{}

		// act
		err = p.Run(context.Background(), run)

		assert.NotNil(t, err)
		assert.Equal(t, contracts.StatusSucceeded, run.GetStageRun("test").Status)
		assert.Equal(t, contracts.StatusFailed, run.GetStageRun("publish-package").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("await-package").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("publish-image").Status)
		assert.Equal(t, contracts.StatusFailed, run.Status)
	})

	t.Run("ContinuesSiblingStagesWhenAStageFails", func(t *testing.T) {

		p, err := New(4,
			Stage{Name: "test", Run: noop},
			Stage{Name: "publish-package", DependsOn: []string{"test"}, Run: func(ctx context.Context) error {
				return errors.New("upload rejected")
			}},
			Stage{Name: "record-release", DependsOn: []string{"test"}, Run: noop},
		)
		assert.Nil(t, err)

		run := &contracts.PipelineRun{}

		// act
		err = p.Run(context.Background(), run)

		assert.NotNil(t, err)
		assert.Equal(t, contracts.StatusFailed, run.GetStageRun("publish-package").Status)
		assert.Equal(t, contracts.StatusSucceeded, run.GetStageRun("record-release").Status)
	})

	t.Run("FailsOnlyTheTimedOutStageAndSkipsItsDependents", func(t *testing.T) {

		p, err := New(4,
			Stage{Name: "await-package", Timeout: 50 * time.Millisecond, Run: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			}},
			Stage{Name: "record-release", Run: noop},
			Stage{Name: "publish-image", DependsOn: []string{"await-package"}, Run: noop},
		)
		assert.Nil(t, err)

		run := &contracts.PipelineRun{}

		// act
		err = p.Run(context.Background(), run)

		assert.NotNil(t, err)
		assert.Equal(t, contracts.StatusFailed, run.GetStageRun("await-package").Status)
		assert.Equal(t, contracts.StatusSkipped, run.GetStageRun("publish-image").Status)
		assert.Equal(t, contracts.StatusSucceeded, run.GetStageRun("record-release").Status)
		assert.Equal(t, contracts.StatusFailed, run.Status)
	})

	t.Run("StartsRootStagesWithoutWaiting", func(t *testing.T) {

		p, err := New(1,
			Stage{Name: "test", Run: noop},
		)
		assert.Nil(t, err)

		run := &contracts.PipelineRun{}

		// act
		err = p.Run(context.Background(), run)

		assert.Nil(t, err)
		assert.Equal(t, contracts.StatusSucceeded, run.GetStageRun("test").Status)
		assert.NotNil(t, run.GetStageRun("test").StartedAt)
		assert.NotNil(t, run.GetStageRun("test").FinishedAt)
	})
}
