package databricks

import (
	"errors"
	"os"
	"strings"
)

// Credentials identify a Databricks workspace and the token used against it.
type Credentials struct {
	Host  string
	Token string
}

// ErrNoCredentials is returned when neither per-request headers nor the
// environment supply a host and token.
var ErrNoCredentials = errors.New("databricks credentials not configured: set DATABRICKS_HOST and DATABRICKS_TOKEN or pass per-request headers")

// CredentialsFromEnv reads DATABRICKS_HOST and DATABRICKS_TOKEN.
func CredentialsFromEnv() (Credentials, error) {
	creds := Credentials{
		Host:  os.Getenv("DATABRICKS_HOST"),
		Token: os.Getenv("DATABRICKS_TOKEN"),
	}
	if creds.Host == "" || creds.Token == "" {
		return Credentials{}, ErrNoCredentials
	}
	creds.Host = NormalizeHost(creds.Host)
	return creds, nil
}

// NormalizeHost trims whitespace and trailing slashes and prepends https://
// when no scheme is present.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimRight(host, "/")
	if host == "" {
		return ""
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return host
}

// Valid reports whether both host and token are set.
func (c Credentials) Valid() bool {
	return c.Host != "" && c.Token != ""
}
