package worker // import "github.com/deepeshsaheb-tal/bookcritic/worker"

import (
	"github.com/deepeshsaheb-tal/bookcritic/model"
)

// WorkPool is a queue of background jobs consumed by a set of workers.
type WorkPool interface {
	Push(job model.Job)
	GetQueue() chan model.Job
}
