package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gitee.com/flycash/vendor-dispatch/internal/errs"
	"gitee.com/flycash/vendor-dispatch/internal/pkg/retry"
	"github.com/gotomicro/ego/core/elog"
)

const maxBodySize = 4 << 20

// Request 发往供应商的线上请求
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Clone 返回深拷贝，签名步骤在副本上追加凭证
func (r Request) Clone() Request {
	res := r
	res.Header = r.Header.Clone()
	if res.Header == nil {
		res.Header = make(http.Header)
	}
	res.Body = append([]byte(nil), r.Body...)
	return res
}

// Response 供应商原始响应
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client 传输层，必须并发安全。网络失败以 error 返回，非 2xx 状态码不是 error
//
//go:generate mockgen -source=./transport.go -destination=./mocks/transport.mock.go -package=transportmocks Client
type Client interface {
	Invoke(ctx context.Context, req Request) (Response, error)
}

// HTTPClient 基于 net/http 的传输实现，超时由 http.Client 控制，网络错误按配置重试
type HTTPClient struct {
	client   *http.Client
	retryCfg retry.Config
	logger   *elog.Component
}

func NewHTTPClient(client *http.Client, retryCfg retry.Config) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPClient{
		client:   client,
		retryCfg: retryCfg,
		logger:   elog.DefaultLogger,
	}
}

func (c *HTTPClient) Invoke(ctx context.Context, req Request) (Response, error) {
	strategy, err := retry.NewRetry(c.retryCfg)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", errs.ErrTransportFailed, err)
	}
	for {
		resp, err1 := c.do(ctx, req)
		if err1 == nil {
			return resp, nil
		}
		interval, ok := strategy.Next()
		if !ok {
			return Response{}, err1
		}
		c.logger.Warn("调用供应商失败，准备重试",
			elog.String("url", req.URL),
			elog.String("interval", interval.String()),
			elog.FieldErr(err1),
		)
		select {
		case <-ctx.Done():
			return Response{}, fmt.Errorf("%w: %w", errs.ErrTransportFailed, ctx.Err())
		case <-time.After(interval):
		}
	}
}

func (c *HTTPClient) do(ctx context.Context, req Request) (Response, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", errs.ErrTransportFailed, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", errs.ErrTransportFailed, err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
	if err != nil {
		return Response{}, fmt.Errorf("%w: 读取响应失败: %w", errs.ErrTransportFailed, err)
	}
	return Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
	}, nil
}
