package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/wolfman30/launch216/internal/config"
	"github.com/wolfman30/launch216/internal/notify"
	"github.com/wolfman30/launch216/pkg/logging"
)

func TestBuildEmailSender(t *testing.T) {
	tests := []struct {
		name    string
		cfg     appconfig.Config
		want    any
		wantErr string
	}{
		{name: "auto prefers resend", cfg: appconfig.Config{EmailProvider: "auto", ResendAPIKey: "re_x", SendGridAPIKey: "SG.x"}, want: &notify.ResendSender{}},
		{name: "auto falls back to sendgrid", cfg: appconfig.Config{EmailProvider: "auto", SendGridAPIKey: "SG.x"}, want: &notify.SendGridSender{}},
		{name: "auto without keys stubs", cfg: appconfig.Config{EmailProvider: ""}, want: &notify.StubEmailSender{}},
		{name: "explicit stub", cfg: appconfig.Config{EmailProvider: "stub", ResendAPIKey: "re_x"}, want: &notify.StubEmailSender{}},
		{name: "ses", cfg: appconfig.Config{EmailProvider: "ses", AWSRegion: "us-east-1", AWSAccessKeyID: "a", AWSSecretAccessKey: "b"}, want: &notify.SESSender{}},
		{name: "resend without key", cfg: appconfig.Config{EmailProvider: "resend"}, wantErr: "RESEND_API_KEY"},
		{name: "sendgrid without key", cfg: appconfig.Config{EmailProvider: "sendgrid"}, wantErr: "SENDGRID_API_KEY"},
		{name: "unknown", cfg: appconfig.Config{EmailProvider: "pigeon"}, wantErr: "unknown EMAIL_PROVIDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			sender, err := BuildEmailSender(context.Background(), &cfg, logging.New("error"))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, sender)
		})
	}
}

func TestBuildEmailSenderRequiresConfig(t *testing.T) {
	_, err := BuildEmailSender(context.Background(), nil, nil)
	require.Error(t, err)
}
