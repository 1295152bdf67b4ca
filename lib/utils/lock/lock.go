package lock

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	lockMap sync.Map
)

// ErrLockTimeout ключ не освободился за отведенное время или контекст завершился
var ErrLockTimeout = errors.New("ресурс занят параллельной операцией")

func JobApplicantKey(jobApplicantID string) string {
	return "job-applicant:" + jobApplicantID
}

// WithDelay выполняет safeCode под блокировкой ключа в пределах процесса, ожидая освобождения не дольше wait
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) error {
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout:
			return ErrLockTimeout
		case <-ctx.Done():
			return ErrLockTimeout
		default:
			time.Sleep(50 * time.Millisecond)
		}
	}
	defer lockMap.Delete(key)
	return safeCode()
}
