package config

import (
	"errors"
	"flag"
	"net"
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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "24h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-state-hash-key OAuth state signing key
//	-frontend-url frontend redirect base URL
//	-google-client-id / -google-client-secret / -google-redirect-uri OAuth client settings
//	-drive-folder Drive backup folder name
//	-purge-interval / -purge-retention tombstone purge worker settings
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var stateHashKey string
	var frontendURL string
	var googleClientID string
	var googleClientSecret string
	var googleRedirectURI string
	var driveFolder string
	var purgeInterval time.Duration
	var purgeRetention time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&stateHashKey, "state-hash-key", "", "OAuth state signing key")
	flag.StringVar(&frontendURL, "frontend-url", "", "Frontend redirect base URL")
	flag.StringVar(&googleClientID, "google-client-id", "", "Google OAuth client ID")
	flag.StringVar(&googleClientSecret, "google-client-secret", "", "Google OAuth client secret")
	flag.StringVar(&googleRedirectURI, "google-redirect-uri", "", "Google OAuth redirect URI")
	flag.StringVar(&driveFolder, "drive-folder", "", "Drive backup folder name")
	flag.DurationVar(&purgeInterval, "purge-interval", 0, "Tombstone purge interval (e.g., 1h)")
	flag.DurationVar(&purgeRetention, "purge-retention", 0, "Tombstone retention period (e.g., 720h)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			StateHashKey:  stateHashKey,
			FrontendURL:   frontendURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Google: Google{
			ClientID:     googleClientID,
			ClientSecret: googleClientSecret,
			RedirectURI:  googleRedirectURI,
			DriveFolder:  driveFolder,
		},
		Workers: Workers{
			PurgeInterval:  purgeInterval,
			PurgeRetention: purgeRetention,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port

	return nil
}
