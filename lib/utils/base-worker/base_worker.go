package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

// Job одна итерация периодической задачи, возвращает число обработанных записей
type Job func(ctx context.Context) (int64, error)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	logger := log.
		WithField("worker_name", i.WorkerName)
	return logger
}

// Start запускает задачу в отдельной горутине до завершения контекста
func (i BaseImpl) Start(ctx context.Context, job Job) {
	go i.Run(ctx, job)
}

func (i BaseImpl) Run(ctx context.Context, job Job) {
	period := i.firstRunDelay
	logger := i.GetLogger()
	for {
		select {
		// проверяем не завершён ли ещё контекст и выходим, если завершён
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-time.After(period):
			i.RunOnce(ctx, job)
		}
		period = i.runInterval
	}
}

// RunOnce паника в задаче не останавливает воркер
func (i BaseImpl) RunOnce(ctx context.Context, job Job) {
	logger := i.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	processed, err := job(ctx)
	if err != nil {
		logger.WithError(err).Error("ошибка выполнения задачи")
		return
	}
	if processed > 0 {
		logger.WithField("processed", processed).Info("Задача выполнена")
	}
}
