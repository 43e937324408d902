package server

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/gpp-woo/publicationbank/internal/compress"
	"github.com/gpp-woo/publicationbank/internal/config"
	"github.com/gpp-woo/publicationbank/internal/index"
	"github.com/gpp-woo/publicationbank/internal/jobs"
	"github.com/gpp-woo/publicationbank/internal/search"
	"github.com/gpp-woo/publicationbank/internal/store"
)

// Start boots the registry worker: it connects the store, the index action
// queue and the search client, runs the scheduled jobs and the index sync
// loop, and blocks until an interrupt signal arrives.
func Start(cnf *config.Config) error {
	db := config.GetDb(cnf)
	st := store.NewGormStore(db)
	if err := st.Migrate(); err != nil {
		return err
	}

	queue, err := NewQueue(cnf)
	if err != nil {
		return err
	}
	defer queue.Close()

	client := search.NewLogClient()

	executor := jobs.NewExecutor(
		jobs.NewRetentionSweep(cnf.RetentionSweepSchedule, st),
	)
	executor.Run()

	indexSync := jobs.NewIndexSync(st, queue, client)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Infof("starting index sync loop, queue backend: %s", cnf.QueueBackend)
		indexSync.Run()
		logrus.Infof("index sync loop stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the worker
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	executor.Stop()
	indexSync.Stop()
	wg.Wait()

	return nil
}

// NewQueue builds the index action queue for the configured backend.
func NewQueue(cnf *config.Config) (index.Queue, error) {
	switch cnf.QueueBackend {
	case "redis":
		return index.NewRedisQueue(cnf.RedisAddr), nil
	case "kafka":
		return index.NewKafkaQueue(cnf.KafkaBrokers, cnf.KafkaGroup)
	case "memory":
		return index.NewMemoryQueue(), nil
	default:
		return index.NewNoopQueue(), nil
	}
}

// Codec resolves the configured audit snapshot codec.
func Codec(cnf *config.Config) compress.Compress {
	return compress.ByName(cnf.AuditCodec)
}
