package useragent

import (
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"
)

// applyProxy routes t through the proxy at rawURL. http and https proxies
// use CONNECT; socks5 and socks5h dial through golang.org/x/net/proxy.
func applyProxy(t *http.Transport, rawURL string) error {
	if rawURL == "" {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("useragent: parse proxy url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		t.Proxy = http.ProxyURL(u)
		return nil
	case "socks5", "socks5h":
		d, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return fmt.Errorf("useragent: socks proxy: %w", err)
		}
		cd, ok := d.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("useragent: socks proxy dialer %T does not support contexts", d)
		}
		t.Proxy = nil
		t.DialContext = cd.DialContext
		return nil
	default:
		return fmt.Errorf("useragent: unsupported proxy scheme %q", u.Scheme)
	}
}
