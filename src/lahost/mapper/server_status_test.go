package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polder-ide/lahost/src/lahost/entity"
)

func TestRawToHealthStatus(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    entity.HealthStatus
		wantErr bool
	}{
		{
			name: "ok quiescent",
			data: `{"health":"ok","quiescent":true}`,
			want: entity.HealthStatus{Health: entity.HealthOK, Quiescent: true},
		},
		{
			name: "warning with message",
			data: `{"health":"warning","quiescent":false,"message":"cargo check failed"}`,
			want: entity.HealthStatus{Health: entity.HealthWarning, Message: "cargo check failed"},
		},
		{
			name: "error",
			data: `{"health":"error","quiescent":true,"message":"workspace failed to load"}`,
			want: entity.HealthStatus{Health: entity.HealthError, Quiescent: true, Message: "workspace failed to load"},
		},
		{
			name:    "unknown health value",
			data:    `{"health":"meh"}`,
			wantErr: true,
		},
		{
			name:    "malformed payload",
			data:    `{"health":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RawToHealthStatus([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
