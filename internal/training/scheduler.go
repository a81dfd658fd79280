package training

import (
	"sync"

	"github.com/roylee0704/gron"

	"nest/internal/providers"
	"nest/internal/structures"
	"nest/internal/training/interfaces"
)

// Scheduler periodically snapshots the metrics buffer to disk.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	path := s.config.Training.SnapshotPath

	s.cron.AddFunc(gron.Every(s.config.Training.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		if err := s.fileManager.SaveToFile(path); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting metrics buffer: %s", err)
			return
		}
		s.logger.Debugf(providers.TypeApp, "Persisted metrics buffer to %s", path)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Training.SnapshotPath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting metrics buffer to file...")
	if err := s.fileManager.SaveToFile(s.config.Training.SnapshotPath); err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting metrics buffer: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		fileManager: fileManager,
	}
}
