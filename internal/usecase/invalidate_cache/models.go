package invalidate_cache

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// Источники событий записи
const (
	SourceHTTP  = "http"
	SourceKafka = "kafka"
)

// Request снимки записи или блокировки до и после изменения
// Create передаёт только After, Delete только Before, Update оба
type Request struct {
	Before *domain.WriteSnapshot
	After  *domain.WriteSnapshot
	Source string
}

// Response ключи, для которых было выполнено удаление
type Response struct {
	Deleted []domain.CacheKey
}
