package netclient

import (
	"fmt"
	"net/url"
	"strings"
)

// RelayURL maps the API base URL onto the relay endpoint on the same
// host: http becomes ws, https becomes wss, and the path is /ws.
func RelayURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q in %s", u.Scheme, server)
	}
	if u.Host == "" {
		return "", fmt.Errorf("no host in %s", server)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}
