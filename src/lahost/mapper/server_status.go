package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/polder-ide/lahost/src/lahost/entity"
)

// ServerStatusParams is the wire form of the server's health notification.
type ServerStatusParams struct {
	Health    string `json:"health"`
	Quiescent bool   `json:"quiescent"`
	Message   string `json:"message,omitempty"`
}

// RawToHealthStatus parses a serverStatus notification payload.
func RawToHealthStatus(data []byte) (entity.HealthStatus, error) {
	var params ServerStatusParams
	if err := json.Unmarshal(data, &params); err != nil {
		return entity.HealthStatus{}, fmt.Errorf("unmarshalling server status: %w", err)
	}

	status := entity.HealthStatus{
		Quiescent: params.Quiescent,
		Message:   params.Message,
	}
	switch params.Health {
	case "ok":
		status.Health = entity.HealthOK
	case "warning":
		status.Health = entity.HealthWarning
	case "error":
		status.Health = entity.HealthError
	default:
		return entity.HealthStatus{}, fmt.Errorf("unknown server health %q", params.Health)
	}
	return status, nil
}
