package config

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the process command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-auth-strategy auth strategy ("jwt" or "static")
//	-static-token static bearer token
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-login-username login account name
//	-login-password-hash precomputed login credential
//	-hash-iterations PBKDF2 iteration count
//	-hash-workers concurrent key derivations
//	-sensitive-keys comma separated masking keys
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-shutdown-timeout graceful shutdown timeout
//	-storage audit sink driver ("file", "sqlite" or "postgres")
//	-access-log access log file path
//	-security-log security log file path
//	-d database DSN
//	-buffer-size audit sink queue size
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[0], os.Args[1:])
}

func parseFlags(name string, args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	var serverAddress NetAddress
	var jsonConfigPath string
	var authStrategy, staticToken string
	var tokenSignKey, tokenIssuer string
	var tokenDuration time.Duration
	var loginUsername, loginPasswordHash string
	var hashIterations, hashWorkers int
	var sensitiveKeys string
	var requestTimeout, shutdownTimeout time.Duration
	var driver, accessLog, securityLog, databaseDSN string
	var bufferSize int

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&authStrategy, "auth-strategy", "", "Auth strategy (jwt or static)")
	fs.StringVar(&staticToken, "static-token", "", "Static bearer token")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.StringVar(&loginUsername, "login-username", "", "Login account name")
	fs.StringVar(&loginPasswordHash, "login-password-hash", "", "Precomputed login credential")
	fs.IntVar(&hashIterations, "hash-iterations", 0, "PBKDF2 iteration count")
	fs.IntVar(&hashWorkers, "hash-workers", 0, "Concurrent key derivations")
	fs.StringVar(&sensitiveKeys, "sensitive-keys", "", "Comma separated masking keys")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")
	fs.StringVar(&driver, "storage", "", "Audit sink driver (file, sqlite or postgres)")
	fs.StringVar(&accessLog, "access-log", "", "Access log file path")
	fs.StringVar(&securityLog, "security-log", "", "Security log file path")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.IntVar(&bufferSize, "buffer-size", 0, "Audit sink queue size")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			AuthStrategy:      authStrategy,
			StaticToken:       staticToken,
			TokenSignKey:      tokenSignKey,
			TokenIssuer:       tokenIssuer,
			TokenDuration:     tokenDuration,
			LoginUsername:     loginUsername,
			LoginPasswordHash: loginPasswordHash,
			HashIterations:    hashIterations,
			HashWorkers:       hashWorkers,
			SensitiveKeys:     splitList(sensitiveKeys),
		},
		Storage: Storage{
			Driver:          driver,
			AccessLogPath:   accessLog,
			SecurityLogPath: securityLog,
			BufferSize:      bufferSize,
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns the address in host:port form, or "" when unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses host:port into the NetAddress. An empty host listens on all
// interfaces; any other host must be "localhost" or an IP literal. IPv6
// literals use the bracketed form, e.g. "[::1]:3000".
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: port %q is not in 1..65535", ErrInvalidAddress, rawPort)
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return fmt.Errorf("%w: host %q is not an IP address", ErrInvalidAddress, host)
	}

	a.Host, a.Port = host, port
	return nil
}
