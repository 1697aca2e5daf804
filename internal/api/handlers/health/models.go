package health

// StatusResponse ответ health и readiness проверок
type StatusResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

const (
	statusOK   = "ok"
	statusFail = "fail"
)
