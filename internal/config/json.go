package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
// Durations are written as strings such as "30s".
type StructuredJSONConfig struct {
	App struct {
		AuthStrategy      string   `json:"auth_strategy"`
		StaticToken       string   `json:"static_token"`
		TokenSignKey      string   `json:"token_sign_key"`
		TokenIssuer       string   `json:"token_issuer"`
		TokenDuration     Duration `json:"token_duration"`
		LoginUsername     string   `json:"login_username"`
		LoginPassword     string   `json:"login_password"`
		LoginPasswordHash string   `json:"login_password_hash"`
		HashIterations    int      `json:"hash_iterations"`
		HashWorkers       int      `json:"hash_workers"`
		SensitiveKeys     []string `json:"sensitive_keys"`
		Version           string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Driver          string `json:"driver"`
		AccessLogPath   string `json:"access_log_path"`
		SecurityLogPath string `json:"security_log_path"`
		BufferSize      int    `json:"buffer_size"`
		DB              struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			AuthStrategy:      jsonCfg.App.AuthStrategy,
			StaticToken:       jsonCfg.App.StaticToken,
			TokenSignKey:      jsonCfg.App.TokenSignKey,
			TokenIssuer:       jsonCfg.App.TokenIssuer,
			TokenDuration:     time.Duration(jsonCfg.App.TokenDuration),
			LoginUsername:     jsonCfg.App.LoginUsername,
			LoginPassword:     jsonCfg.App.LoginPassword,
			LoginPasswordHash: jsonCfg.App.LoginPasswordHash,
			HashIterations:    jsonCfg.App.HashIterations,
			HashWorkers:       jsonCfg.App.HashWorkers,
			SensitiveKeys:     jsonCfg.App.SensitiveKeys,
			Version:           jsonCfg.App.Version,
		},
		Storage: Storage{
			Driver:          jsonCfg.Storage.Driver,
			AccessLogPath:   jsonCfg.Storage.AccessLogPath,
			SecurityLogPath: jsonCfg.Storage.SecurityLogPath,
			BufferSize:      jsonCfg.Storage.BufferSize,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
