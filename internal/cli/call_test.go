package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		token   string
		want    string
		wantErr bool
	}{
		{
			name:  "http base",
			base:  "http://localhost:8080",
			token: "tok",
			want:  "ws://localhost:8080/ws?token=tok",
		},
		{
			name:  "https base",
			base:  "https://gateway.playcircuit.test",
			token: "tok",
			want:  "wss://gateway.playcircuit.test/ws?token=tok",
		},
		{
			name:  "trailing slash",
			base:  "http://localhost:8080/",
			token: "tok",
			want:  "ws://localhost:8080/ws?token=tok",
		},
		{
			name:    "unsupported scheme",
			base:    "ftp://localhost",
			token:   "tok",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := websocketURL(tt.base, tt.token)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
