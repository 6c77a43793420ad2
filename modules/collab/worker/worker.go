package worker

import (
	"context"
	"time"

	"plansync/core/constants"
	"plansync/core/logger"
	"plansync/modules/collab/service"

	"github.com/hibiken/asynq"
)

// Worker resolves collaborative events whose voting deadline has passed. A
// periodic task enqueued by the scheduler drives the scan.
type Worker struct {
	collabService service.CollabServiceInterface
}

func NewWorker(collabService service.CollabServiceInterface) *Worker {
	return &Worker{collabService: collabService}
}

func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskCollabFinalize, w.HandleFinalize)
}

// RegisterPeriodic enqueues the finalize scan every minute.
func (w *Worker) RegisterPeriodic(scheduler *asynq.Scheduler) error {
	task := asynq.NewTask(constants.TaskCollabFinalize, nil)
	_, err := scheduler.Register("@every 1m", task, asynq.Queue(constants.QueueDefault))
	return err
}

func (w *Worker) HandleFinalize(ctx context.Context, _ *asynq.Task) error {
	resolved, err := w.collabService.FinalizeExpired(ctx, time.Now())
	if err != nil {
		logger.Error("CollabWorker:HandleFinalize:Error:", err)
		return err
	}
	if resolved > 0 {
		logger.Info("CollabWorker:HandleFinalize:Resolved", "count", resolved)
	}
	return nil
}
