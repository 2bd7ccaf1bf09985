package cron

import (
	"context"
	"time"

	"tutorhub/config"
	"tutorhub/services/tasks"
	"tutorhub/services/wizard"
	"tutorhub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitStageSweepWorker runs the background worker and scheduler that reap
// staged documents from expired wizard sessions. The Redis session record
// expires by TTL; the file it referenced does not, so without this sweep
// abandoned sessions accumulate orphaned files on disk.
func InitStageSweepWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 1,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeStageSweep, handleStageSweep)

	scheduler := asynq.NewScheduler(redisOpts, nil)
	spec := "@every " + sweepInterval().String()
	if _, err := scheduler.Register(spec, tasks.NewStageSweepTask()); err != nil {
		utils.GetLogger().Fatal("StageSweepWorker: failed to register sweep schedule", zap.Error(err))
	}

	go runWithRetry("stage sweep scheduler", scheduler.Run)
	go runWithRetry("stage sweep worker", func() error { return srv.Run(mux) })
}

func handleStageSweep(_ context.Context, _ *asynq.Task) error {
	removed, err := wizard.SweepStageDir(wizard.StageDir(), sweepMaxAge())
	if err != nil {
		utils.GetLogger().Error("StageSweep: sweep failed", zap.Error(err))
		return err
	}
	if removed > 0 {
		utils.GetLogger().Info("StageSweep: removed stale staged documents", zap.Int("count", removed))
	}
	return nil
}

func sweepInterval() time.Duration {
	if config.AppConfig.StageSweepInterval > 0 {
		return config.AppConfig.StageSweepInterval
	}
	return time.Hour
}

// sweepMaxAge must stay well above the session TTL: saves refresh the TTL, so
// an active draft can legitimately hold a staged file for hours.
func sweepMaxAge() time.Duration {
	if config.AppConfig.StageSweepMaxAge > 0 {
		return config.AppConfig.StageSweepMaxAge
	}
	return 24 * time.Hour
}

func runWithRetry(name string, run func() error) {
	const maxAttempts = 5
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err := run()
		if err == nil {
			return
		}
		utils.GetLogger().Error("StageSweepWorker: component failed to run",
			zap.String("component", name), zap.Int("attempt", attempts), zap.Error(err))
		if attempts == maxAttempts {
			utils.GetLogger().Fatal("StageSweepWorker: max retry attempts reached", zap.String("component", name))
		}
		time.Sleep(time.Duration(attempts*2) * time.Second)
	}
}
