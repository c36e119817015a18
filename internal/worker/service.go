package worker

import (
	"context"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"veritas/internal/ingest"
	"veritas/internal/models"

	"gorm.io/gorm"
)

// retentionDays is how long unclustered articles are kept before cleanup.
// Articles linked to an incident are never removed here, so incident bounds
// stay derived from their full article set.
const retentionDays = 60

// WorkerService runs the periodic ingestion and cleanup jobs.
type WorkerService struct {
	db       *gorm.DB
	ingestor *ingest.Ingestor

	fetchInterval time.Duration
	fetchQuery    string

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.RWMutex
}

// NewWorkerService creates a worker service. Intervals and the fetch query
// come from the environment (FETCH_INTERVAL_HOURS, FETCH_QUERY).
func NewWorkerService(db *gorm.DB) *WorkerService {
	ctx, cancel := context.WithCancel(context.Background())

	intervalHours := 6
	if raw := os.Getenv("FETCH_INTERVAL_HOURS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			intervalHours = parsed
		}
	}

	query := os.Getenv("FETCH_QUERY")
	if query == "" {
		query = "world OR international OR global"
	}

	return &WorkerService{
		db:            db,
		ingestor:      ingest.NewIngestor(db, os.Getenv("ENRICH_METADATA") == "true"),
		fetchInterval: time.Duration(intervalHours) * time.Hour,
		fetchQuery:    query,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start starts the background workers.
func (ws *WorkerService) Start() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.running {
		return nil
	}

	log.Println("Starting background workers...")

	ws.wg.Add(1)
	go func() {
		defer ws.wg.Done()
		ws.runFetchLoop()
	}()

	ws.wg.Add(1)
	go func() {
		defer ws.wg.Done()
		ws.runCleanupLoop()
	}()

	ws.running = true
	log.Println("Background workers started")
	return nil
}

// Stop stops all background workers and waits for them to finish.
func (ws *WorkerService) Stop() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if !ws.running {
		return
	}

	log.Println("Stopping background workers...")
	ws.cancel()
	ws.wg.Wait()
	ws.running = false
	log.Println("Background workers stopped")
}

// IsRunning returns whether the worker service is currently running.
func (ws *WorkerService) IsRunning() bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.running
}

// TriggerFetch runs one ingestion batch immediately. Used by the admin
// endpoint and the fetch command.
func (ws *WorkerService) TriggerFetch(ctx context.Context) (ingest.Stats, error) {
	return ws.ingestor.Run(ctx, ws.fetchQuery, 7, 50)
}

func (ws *WorkerService) runFetchLoop() {
	ticker := time.NewTicker(ws.fetchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ws.ctx.Done():
			return
		case <-ticker.C:
			if _, err := ws.ingestor.Run(ws.ctx, ws.fetchQuery, 7, 50); err != nil {
				log.Printf("Scheduled fetch failed: %v", err)
			}
		}
	}
}

func (ws *WorkerService) runCleanupLoop() {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ws.ctx.Done():
			return
		case <-ticker.C:
			ws.cleanupOldArticles()
		}
	}
}

// cleanupOldArticles removes stale articles that never joined an incident.
func (ws *WorkerService) cleanupOldArticles() {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	res := ws.db.WithContext(ws.ctx).
		Where("published_date < ?", cutoff).
		Where("id NOT IN (?)",
			ws.db.Model(&models.IncidentArticle{}).Select("article_id")).
		Delete(&models.Article{})

	if res.Error != nil {
		log.Printf("Cleanup failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Cleanup removed %d unclustered articles older than %d days", res.RowsAffected, retentionDays)
	}
}
