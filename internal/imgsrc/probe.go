package imgsrc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"
)

const defaultProbeTimeout = 5 * time.Second

// ErrBlockedURL marks a candidate the prober refuses to request: a non-HTTP
// scheme, a host outside the allowlist, or a non-public address.
var ErrBlockedURL = errors.New("image url not allowed")

// Prober stands in for a rendering surface that cannot decode images
// itself. It requests the resolver's current candidate and reports a
// failure back whenever the response is not an image.
type Prober struct {
	client       *http.Client
	logger       *slog.Logger
	allowedHosts []string
}

// NewProber creates a prober. A nil client gets a default one bounded by
// timeout (or 5s when timeout is zero) that only dials public addresses.
func NewProber(client *http.Client, timeout time.Duration, logger *slog.Logger) *Prober {
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: timeout, Transport: publicTransport()}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Prober{client: client, logger: logger}
}

// WithAllowedHosts restricts probing to the given hosts and their
// subdomains. An empty list allows any public host.
func (p *Prober) WithAllowedHosts(hosts []string) *Prober {
	p.allowedHosts = nil
	for _, h := range hosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			p.allowedHosts = append(p.allowedHosts, h)
		}
	}
	return p
}

// Resolve walks r until a candidate loads or the list is exhausted and
// returns the URL to display. Data URLs are accepted without a request.
// If ctx ends first, Resolve returns ctx.Err() and no URL; the placeholder
// is only returned once every candidate has actually failed.
func (p *Prober) Resolve(ctx context.Context, r *Resolver) (string, error) {
	for {
		cur := r.Current()
		if cur == Placeholder {
			return cur, nil
		}
		err := p.Check(ctx, cur)
		if err == nil {
			return cur, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		p.logger.Debug("Image candidate failed", "url", cur, "error", err)
		if !r.ReportFailure() {
			return r.Current(), nil
		}
	}
}

// Check reports whether url serves an image. HEAD is tried first; servers
// that reject it get a single-byte ranged GET.
func (p *Prober) Check(ctx context.Context, rawURL string) error {
	if strings.HasPrefix(rawURL, "data:image/") {
		return nil
	}
	if err := p.allowed(rawURL); err != nil {
		return err
	}

	resp, err := p.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusMethodNotAllowed {
		resp, err = p.do(ctx, http.MethodGet, rawURL)
		if err != nil {
			return err
		}
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("unexpected content type %q", ct)
	}
	return nil
}

func (p *Prober) allowed(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBlockedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrBlockedURL, u.Scheme)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("%w: missing host", ErrBlockedURL)
	}
	if len(p.allowedHosts) == 0 {
		return nil
	}
	for _, h := range p.allowedHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return nil
		}
	}
	return fmt.Errorf("%w: host %q", ErrBlockedURL, host)
}

func (p *Prober) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if method == http.MethodGet {
		req.Header.Set("Range", "bytes=0-0")
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	resp.Body.Close()
	return resp, nil
}

// --------------------------------------------------------------------------
// Public-address dialing
// --------------------------------------------------------------------------

// publicTransport is the default transport with a dialer that refuses
// loopback, private, link-local and other non-routable addresses. The check
// runs on the resolved address of every connection, redirects included.
func publicTransport() *http.Transport {
	t := &http.Transport{}
	if def, ok := http.DefaultTransport.(*http.Transport); ok {
		t = def.Clone()
	}
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   dialPublicOnly,
	}
	t.DialContext = dialer.DialContext
	t.Proxy = nil
	return t
}

func dialPublicOnly(network, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedURL, address)
	}
	if !IsPublicAddr(ap.Addr()) {
		return fmt.Errorf("%w: %s is not a public address", ErrBlockedURL, ap.Addr())
	}
	return nil
}

var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// IsPublicAddr reports whether addr is a globally routable unicast address.
func IsPublicAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	switch {
	case !addr.IsValid(),
		addr.IsUnspecified(),
		addr.IsLoopback(),
		addr.IsPrivate(),
		addr.IsLinkLocalUnicast(),
		addr.IsLinkLocalMulticast(),
		addr.IsInterfaceLocalMulticast(),
		addr.IsMulticast(),
		sharedAddressSpace.Contains(addr):
		return false
	}
	return true
}
