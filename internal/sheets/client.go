package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/Frenky19/QRkot-spreadsheets/internal/config"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var scopes = []string{
	sheets.SpreadsheetsScope,
	"https://www.googleapis.com/auth/drive.file",
}

// Client Google 表格导出器，凭证在创建时获取一次
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// New 根据服务账号配置创建客户端
func New(ctx context.Context, cfg config.GoogleConfig) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("google.spreadsheet_id is not set")
	}

	data, err := credentialsJSON(cfg)
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	logger.Info("Google Sheets client initialized for %s", cfg.ClientEmail)
	return NewWithService(svc, cfg.SpreadsheetID), nil
}

// NewWithService 使用已有的 sheets 服务
func NewWithService(svc *sheets.Service, spreadsheetID string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID}
}

// credentialsJSON 凭证文件优先，否则由分散的配置项拼出服务账号 JSON
func credentialsJSON(cfg config.GoogleConfig) ([]byte, error) {
	if cfg.CredentialsFile != "" {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read google credentials file: %w", err)
		}
		return data, nil
	}

	required := []struct{ name, value string }{
		{"type", cfg.Type},
		{"project_id", cfg.ProjectID},
		{"private_key_id", cfg.PrivateKeyID},
		{"private_key", cfg.PrivateKey},
		{"client_email", cfg.ClientEmail},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, fmt.Errorf("missing required google field: %s", f.name)
		}
	}

	return json.Marshal(map[string]string{
		"type":                        cfg.Type,
		"project_id":                  cfg.ProjectID,
		"private_key_id":              cfg.PrivateKeyID,
		"private_key":                 cfg.PrivateKey,
		"client_email":                cfg.ClientEmail,
		"client_id":                   cfg.ClientID,
		"auth_uri":                    cfg.AuthURI,
		"token_uri":                   cfg.TokenURI,
		"auth_provider_x509_cert_url": cfg.AuthProviderX509CertURL,
		"client_x509_cert_url":        cfg.ClientX509CertURL,
	})
}
