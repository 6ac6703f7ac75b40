package httpclient

import (
	"EsportsSchedule/internal/config"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrUnexpectedStatus 上游返回非 2xx
var ErrUnexpectedStatus = errors.New("unexpected upstream status")

// StatusError 携带状态码与截断后的响应体
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("请求 %s 返回状态码 %d: %s", e.URL, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }

const maxErrorBody = 512

// NewHTTPClient 通用HTTP客户端构建方法（支持代理、超时、自动解压、限速、UA）
func NewHTTPClient(cfg *config.LiquipediaConfig, logger *logrus.Logger) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		IdleConnTimeout:     30 * time.Second,
		DisableCompression:  false,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	// 配置代理
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			logger.WithError(err).WithField("proxy", cfg.Proxy).Warn("代理地址解析失败，将不使用代理")
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
			logger.WithField("proxy", cfg.Proxy).Info("HTTP客户端已配置代理")
		}
	}

	var rt http.RoundTripper = &compressedTransport{transport: transport, logger: logger}
	rt = NewRateLimitedTransport(rt, cfg.RateInterval)
	rt = &userAgentTransport{transport: rt, userAgent: cfg.UserAgent}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: rt,
	}
}

// userAgentTransport Liquipedia 拒绝没有 UA 的请求
type userAgentTransport struct {
	transport http.RoundTripper
	userAgent string
}

func (u *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if u.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", u.userAgent)
	}
	return u.transport.RoundTrip(req)
}

// RateLimitedTransport 保证两次请求之间至少间隔 interval
type RateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

// NewRateLimitedTransport interval<=0 时不限速
func NewRateLimitedTransport(next http.RoundTripper, interval time.Duration) *RateLimitedTransport {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &RateLimitedTransport{transport: next, limiter: rate.NewLimiter(limit, 1)}
}

func (r *RateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := r.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("等待限速令牌失败: %w", err)
	}
	return r.transport.RoundTrip(req)
}

type compressedTransport struct {
	transport http.RoundTripper
	logger    *logrus.Logger
}

func (c *compressedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept-Encoding", "gzip")
	resp, err := c.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// 处理gzip解压
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			c.logger.WithError(err).Warn("gzip解压失败，返回原始响应")
			return resp, nil
		}
		resp.Body = &gzipReadCloser{
			Reader: gzReader,
			closer: resp.Body,
		}
		resp.Header.Del("Content-Encoding")
		resp.ContentLength = -1
	}

	return resp, nil
}

type gzipReadCloser struct {
	*gzip.Reader
	closer io.ReadCloser
}

// Close 先关闭gzip reader，再关闭原始响应体
func (g *gzipReadCloser) Close() error {
	if err := g.Reader.Close(); err != nil {
		_ = g.closer.Close()
		return err
	}
	return g.closer.Close()
}

// GetBody 发起 GET 并读取完整响应体；网络错误与 5xx 按 retries 重试，4xx 直接返回 *StatusError
func GetBody(ctx context.Context, client *http.Client, rawURL string, header http.Header, retries int, logger *logrus.Logger) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			logger.WithError(lastErr).WithFields(logrus.Fields{
				"url":     rawURL,
				"attempt": attempt,
			}).Warn("请求失败，重试")
		}

		body, retryable, err := getOnce(ctx, client, rawURL, header)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func getOnce(ctx context.Context, client *http.Client, rawURL string, header http.Header) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("构建请求失败: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("请求 %s 失败: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := body
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		statusErr := &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Body: string(snippet)}
		return nil, resp.StatusCode >= 500, statusErr
	}
	return body, false, nil
}
