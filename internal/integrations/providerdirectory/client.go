package providerdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент каталога специалистов и услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
// Исходящие запросы трассируются через otelhttp
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		log: log,
	}
}

// GetProfessional получает специалиста с расписанием и часовым поясом
func (c *Client) GetProfessional(ctx context.Context, professionalID string) (*domain.Professional, error) {
	endpoint := fmt.Sprintf("%s/internal/professionals/%s", c.baseURL, url.PathEscape(professionalID))

	var professional Professional
	if err := c.get(ctx, endpoint, ErrProfessionalNotFound, &professional); err != nil {
		return nil, err
	}

	return professional.ToDomain(), nil
}

// GetService получает услугу: длительность и шаг сетки
func (c *Client) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	endpoint := fmt.Sprintf("%s/internal/services/%s", c.baseURL, url.PathEscape(serviceID))

	var service Service
	if err := c.get(ctx, endpoint, ErrServiceNotFound, &service); err != nil {
		return nil, err
	}

	return service.ToDomain(), nil
}

func (c *Client) get(ctx context.Context, endpoint string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Provider directory request failed: url=%s: %v", endpoint, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
