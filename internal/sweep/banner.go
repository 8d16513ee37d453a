package sweep

import (
	"crypto/tls"
	"fmt"
	"net"
	"strings"
	"time"
	"unicode/utf8"
)

const maxBannerLength = 80

type bannerMode int

const (
	// read whatever the service sends first
	modePassive bannerMode = iota
	// send HEAD and report the Server header
	modeHTTP
	// same as modeHTTP inside a TLS session
	modeHTTPS
)

// ports that will not speak until spoken to
var httpPorts = map[uint16]bannerMode{
	80:   modeHTTP,
	443:  modeHTTPS,
	8000: modeHTTP,
	8080: modeHTTP,
	8443: modeHTTPS,
}

// grabBanner reads a short service banner from an established connection.
// HTTP ports get a HEAD request and report the Server header, TLS ports
// get the same request inside a TLS session, everything else is read
// passively. Failures result in an empty banner.
func grabBanner(conn net.Conn, port uint16, timeout time.Duration) string {
	return readBanner(conn, httpPorts[port], timeout)
}

func readBanner(conn net.Conn, mode bannerMode, timeout time.Duration) string {
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return ""
	}

	host, _, _ := net.SplitHostPort(conn.RemoteAddr().String())

	if mode == modeHTTPS {
		tlsConn := tls.Client(conn, &tls.Config{
			// banners only, the certificate is never trusted
			InsecureSkipVerify: true,
			ServerName:         host,
		})

		if err := tlsConn.Handshake(); err != nil {
			return ""
		}

		conn = tlsConn
	}

	if mode != modePassive {
		if _, err := fmt.Fprintf(conn, "HEAD / HTTP/1.0\r\nHost: %s\r\n\r\n", host); err != nil {
			return ""
		}
	}

	buf := make([]byte, 2048)

	n, err := conn.Read(buf)

	if n == 0 && err != nil {
		return ""
	}

	raw := string(buf[:n])

	if mode != modePassive || strings.HasPrefix(raw, "HTTP/") {
		return parseHTTPServer(raw)
	}

	return cleanBanner(raw)
}

// parseHTTPServer extracts the Server header from an HTTP response falling
// back to the status line
func parseHTTPServer(response string) string {
	for _, line := range strings.Split(response, "\r\n") {
		name, value, ok := strings.Cut(line, ":")

		if ok && strings.EqualFold(strings.TrimSpace(name), "server") {
			return cleanBanner(value)
		}
	}

	return cleanBanner(response)
}

// cleanBanner keeps the first line, printable ASCII only, trimmed to
// maxBannerLength
func cleanBanner(raw string) string {
	if idx := strings.IndexAny(raw, "\r\n"); idx >= 0 {
		raw = raw[:idx]
	}

	if !utf8.ValidString(raw) {
		raw = strings.ToValidUTF8(raw, ".")
	}

	b := strings.Builder{}

	for _, r := range raw {
		if r >= 32 && r <= 126 {
			b.WriteRune(r)
		}
	}

	clean := strings.TrimSpace(b.String())

	if len(clean) > maxBannerLength {
		return clean[:maxBannerLength]
	}

	return clean
}
