// Package client 学习平台 HTTP 接口的 Go 客户端
//
// 令牌保存在调用方持有的 Session 中，每次调用显式传入，客户端本身不保存登录状态。
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/user/learnhub/internal/model"
)

// DefaultTimeout 默认请求超时
const DefaultTimeout = 15 * time.Second

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized 是否为 401
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

type messageBody struct {
	Message string `json:"message"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResult struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    model.Identity `json:"user"`
}

type progressBody struct {
	VideoID        int   `json:"video_id"`
	WatchedSeconds int   `json:"watched_seconds"`
	Completed      *bool `json:"completed,omitempty"`
}

// Client 接口客户端
type Client struct {
	http *resty.Client
}

// New 创建客户端，timeout <= 0 时使用 DefaultTimeout
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// Login 登录并返回新会话
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var out loginResult
	req := c.http.R().
		SetContext(ctx).
		SetBody(loginBody{Email: email, Password: password}).
		SetResult(&out)

	if err := c.execute(req, http.MethodPost, "/auth"); err != nil {
		return nil, err
	}

	user := out.User
	return &Session{Token: out.Token, User: &user}, nil
}

// Logout 通知服务端注销令牌并清空会话；服务端失败时会话同样被清空
func (c *Client) Logout(ctx context.Context, s *Session) error {
	if !s.Authenticated() {
		return nil
	}
	err := c.execute(c.request(ctx, s), http.MethodPost, "/auth/logout")
	s.Clear()
	return err
}

// Dashboard 仪表盘统计
func (c *Client) Dashboard(ctx context.Context, s *Session) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if err := c.execute(c.request(ctx, s).SetResult(&stats), http.MethodGet, "/dashboard"); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Courses 已选课程
func (c *Client) Courses(ctx context.Context, s *Session) ([]model.CourseItem, error) {
	var courses []model.CourseItem
	if err := c.execute(c.request(ctx, s).SetResult(&courses), http.MethodGet, "/courses"); err != nil {
		return nil, err
	}
	return courses, nil
}

// Videos 可观看的视频
func (c *Client) Videos(ctx context.Context, s *Session) ([]model.VideoItem, error) {
	var videos []model.VideoItem
	if err := c.execute(c.request(ctx, s).SetResult(&videos), http.MethodGet, "/videos"); err != nil {
		return nil, err
	}
	return videos, nil
}

// UpdateVideoProgress 上报观看进度，completed 为 nil 时不修改完成状态
func (c *Client) UpdateVideoProgress(ctx context.Context, s *Session, videoID, watchedSeconds int, completed *bool) error {
	req := c.request(ctx, s).SetBody(progressBody{
		VideoID:        videoID,
		WatchedSeconds: watchedSeconds,
		Completed:      completed,
	})
	return c.execute(req, http.MethodPost, "/videos")
}

// request 构造请求，会话已登录时附带 Bearer 令牌
func (c *Client) request(ctx context.Context, s *Session) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if s.Authenticated() {
		req.SetAuthToken(s.Token)
	}
	return req
}

func (c *Client) execute(req *resty.Request, method, path string) error {
	req.SetError(&messageBody{})

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
	if body, ok := resp.Error().(*messageBody); ok && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}
