package strength

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/authdash/internal/netx"
)

// Oracle judges whether a password is strong enough to register with.
// Implementations may call out to the network and must honor ctx.
type Oracle interface {
	Check(ctx context.Context, password string) (bool, error)
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(ctx context.Context, password string) (bool, error)

func (f OracleFunc) Check(ctx context.Context, password string) (bool, error) {
	return f(ctx, password)
}

// Checker is the default Oracle. A password is weak when it fails the shape
// policy or, with a range URL configured, when it appears in the breached
// password corpus served by a k-anonymity range API: only the first five hex
// digits of its SHA-1 digest leave the machine.
type Checker struct {
	rangeURL string
	client   *http.Client
}

// NewChecker returns a Checker. An empty rangeURL disables the breach lookup.
func NewChecker(rangeURL string, client *http.Client) *Checker {
	if client == nil {
		client = http.DefaultClient
	}
	return &Checker{rangeURL: strings.TrimRight(rangeURL, "/"), client: client}
}

func (c *Checker) Check(ctx context.Context, password string) (bool, error) {
	if Validate(password) != nil {
		return false, nil
	}
	if c.rangeURL == "" {
		return true, nil
	}

	breached, err := c.breached(ctx, password)
	if err != nil {
		return false, err
	}
	return !breached, nil
}

func (c *Checker) breached(ctx context.Context, password string) (bool, error) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix, suffix := digest[:5], digest[5:]

	resp, err := netx.Do(ctx, c.client, netx.Request{
		Method: http.MethodGet,
		URL:    c.rangeURL + "/" + prefix,
		Header: http.Header{"Add-Padding": {"true"}},
	})
	if err != nil {
		return false, fmt.Errorf("breach range lookup: %w", err)
	}
	if !resp.OK() {
		return false, fmt.Errorf("breach range lookup: unexpected status %d", resp.Status)
	}

	sc := bufio.NewScanner(bytes.NewReader(resp.Body))
	for sc.Scan() {
		hash, count, ok := strings.Cut(strings.TrimSpace(sc.Text()), ":")
		if !ok || !strings.EqualFold(hash, suffix) {
			continue
		}
		// padded responses list decoys with a zero count
		n, err := strconv.Atoi(strings.TrimSpace(count))
		return err == nil && n > 0, nil
	}
	if err := sc.Err(); err != nil {
		return false, fmt.Errorf("breach range lookup: %w", err)
	}
	return false, nil
}
