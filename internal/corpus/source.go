package corpus

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chriscorrea/questions/internal/extract"
)

// HTTPRequestTimeout bounds a whole page fetch.
const HTTPRequestTimeout = 30 * time.Second

// httpClient is shared by all fetches and safe for concurrent use.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: HTTPRequestTimeout / 6,
		}).DialContext,
		TLSHandshakeTimeout:   HTTPRequestTimeout / 6,
		ResponseHeaderTimeout: HTTPRequestTimeout / 2,
		DisableKeepAlives:     true,
	},
}

// limitedReader fails once more than N bytes have been read, instead of
// silently truncating the document.
type limitedReader struct {
	r      io.Reader
	n      int64
	source string
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.n <= 0 {
		// probe for one more byte to tell "exactly at limit" from "over limit"
		var probe [1]byte
		if n, _ := l.r.Read(probe[:]); n > 0 {
			return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
		}
		return 0, io.EOF
	}
	if int64(len(p)) > l.n {
		p = p[:l.n]
	}
	n, err := l.r.Read(p)
	l.n -= int64(n)
	return n, err
}

// readFile loads a local document, converting HTML files to text.
func readFile(path, selector string, limit int64) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if info.Size() > limit {
		return "", fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)", path, info.Size(), limit)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %q: %w", path, err)
	}
	defer file.Close()

	if isHTML(path) {
		text, err := extract.ToText(file, selector, nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from %q: %w", path, err)
		}
		return text, nil
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return string(data), nil
}

// fetchPage downloads a web page. text/plain responses are kept as they are,
// anything else is treated as HTML.
func fetchPage(ctx context.Context, rawURL, selector string, limit int64) (string, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return "", fmt.Errorf("invalid URL %q: only http and https are supported", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", "questions/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP request failed for URL %q: status %d", rawURL, resp.StatusCode)
	}
	if resp.ContentLength > limit {
		return "", fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", resp.ContentLength, limit)
	}

	body := &limitedReader{r: resp.Body, n: limit, source: rawURL}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		data, err := io.ReadAll(body)
		if err != nil {
			return "", fmt.Errorf("failed to read URL %q: %w", rawURL, err)
		}
		return string(data), nil
	}

	text, err := extract.ToText(body, selector, pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract text from %q: %w", rawURL, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no content extracted from %q", rawURL)
	}
	return text, nil
}
