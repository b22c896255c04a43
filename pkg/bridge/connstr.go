package bridge

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseConnectionString parses an ODBC-style connection string of
// semicolon-separated Key=Value pairs. Values may be wrapped in single or
// double quotes to embed semicolons.
func ParseConnectionString(s string) (map[string]string, error) {
	out := make(map[string]string)
	i := 0
	for i < len(s) {
		// Skip separators and surrounding blanks.
		for i < len(s) && (s[i] == ';' || s[i] == ' ') {
			i++
		}
		if i >= len(s) {
			break
		}

		eq := strings.IndexByte(s[i:], '=')
		if eq < 0 {
			return nil, fmt.Errorf("invalid connection string: missing '=' after %q", s[i:])
		}
		key := strings.TrimSpace(s[i : i+eq])
		if key == "" {
			return nil, fmt.Errorf("invalid connection string: empty key at offset %d", i)
		}
		i += eq + 1

		var value string
		if i < len(s) && (s[i] == '\'' || s[i] == '"') {
			quote := s[i]
			end := strings.IndexByte(s[i+1:], quote)
			if end < 0 {
				return nil, fmt.Errorf("invalid connection string: unterminated quote for %q", key)
			}
			value = s[i+1 : i+1+end]
			i += end + 2
		} else {
			end := strings.IndexByte(s[i:], ';')
			if end < 0 {
				end = len(s) - i
			}
			value = strings.TrimSpace(s[i : i+end])
			i += end
		}
		out[key] = value
	}
	return out, nil
}

// lookup finds a key case-insensitively, trying each alias in order.
func lookup(attrs map[string]string, aliases ...string) string {
	for _, alias := range aliases {
		for k, v := range attrs {
			if strings.EqualFold(k, alias) {
				return v
			}
		}
	}
	return ""
}

// PostgresDSN translates ODBC attributes into a postgres:// URL understood by
// pgx. Unrecognized attributes are ignored.
func PostgresDSN(attrs map[string]string) (string, error) {
	host := lookup(attrs, "Server", "Host", "Servername")
	if host == "" {
		return "", fmt.Errorf("connection string has no Server")
	}
	if port := lookup(attrs, "Port"); port != "" {
		host += ":" + port
	}

	u := &url.URL{Scheme: "postgres", Host: host}
	if db := lookup(attrs, "Database", "DBName"); db != "" {
		u.Path = "/" + db
	}
	user := lookup(attrs, "UID", "User", "Username")
	pwd := lookup(attrs, "PWD", "Password")
	switch {
	case user != "" && pwd != "":
		u.User = url.UserPassword(user, pwd)
	case user != "":
		u.User = url.User(user)
	}

	q := url.Values{}
	if mode := lookup(attrs, "SSLMode"); mode != "" {
		q.Set("sslmode", mode)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
