package pgmeta

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// postgresSchemePrefix matches both postgres:// and postgresql://.
const postgresSchemePrefix = "postgres"

// ConnInfo holds the components parsed out of a connection string.
type ConnInfo struct {
	Scheme   string
	User     string
	Password string
	Host     string
	Port     int
	Database string
}

// IsPostgres reports whether the scheme is in the postgres family.
func (c ConnInfo) IsPostgres() bool {
	return strings.HasPrefix(c.Scheme, postgresSchemePrefix)
}

// Redacted returns a display form of the connection info with the
// password omitted, for logging.
func (c ConnInfo) Redacted() string {
	if c.User == "" {
		return fmt.Sprintf("%s://%s:%d/%s", c.Scheme, c.Host, c.Port, c.Database)
	}
	return fmt.Sprintf("%s://%s@%s:%d/%s", c.Scheme, c.User, c.Host, c.Port, c.Database)
}

// ParseConnString parses a connection string of the form
// scheme://[user[:password]@]host[:port]/database and rejects anything
// that is not a postgres-family URL. A malformed URL and an unsupported
// scheme both fail with ErrConfiguration; there is no distinction
// between the two.
func ParseConnString(connString string) (ConnInfo, error) {
	u, err := url.Parse(connString)
	if err != nil || u.Scheme == "" {
		return ConnInfo{}, fmt.Errorf("%w: %q is not a valid connection string", ErrConfiguration, connString)
	}

	info := ConnInfo{
		Scheme:   u.Scheme,
		Host:     u.Hostname(),
		Database: strings.TrimPrefix(u.Path, "/"),
	}

	if !info.IsPostgres() {
		return ConnInfo{}, fmt.Errorf("%w: %q is not a supported postgres connection string", ErrConfiguration, connString)
	}

	if u.User != nil {
		info.User = u.User.Username()
		info.Password, _ = u.User.Password()
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return ConnInfo{}, fmt.Errorf("%w: invalid port in %q", ErrConfiguration, connString)
		}
		info.Port = port
	}

	return info, nil
}
