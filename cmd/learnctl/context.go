package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/learnhub/internal/client"
)

var errNotLoggedIn = errors.New("not logged in; run `learnctl login` first")

type commandContext struct {
	serverFlag  *string
	sessionFlag *string
	timeoutFlag *time.Duration
}

func newCommandContext(serverFlag, sessionFlag *string, timeoutFlag *time.Duration) *commandContext {
	return &commandContext{
		serverFlag:  serverFlag,
		sessionFlag: sessionFlag,
		timeoutFlag: timeoutFlag,
	}
}

func (c *commandContext) client() *client.Client {
	server := strings.TrimRight(strings.TrimSpace(*c.serverFlag), "/")
	if server == "" {
		server = defaultServerURL
	}
	return client.New(server, *c.timeoutFlag)
}

func (c *commandContext) sessionPath() (string, error) {
	if path := strings.TrimSpace(*c.sessionFlag); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "learnhub", "session.toml"), nil
}

func (c *commandContext) loadSession() (*client.Session, error) {
	path, err := c.sessionPath()
	if err != nil {
		return nil, err
	}
	return client.LoadSession(path)
}

// requireSession 读取本地会话，未登录时返回错误
func (c *commandContext) requireSession() (*client.Session, error) {
	session, err := c.loadSession()
	if err != nil {
		return nil, err
	}
	if !session.Authenticated() {
		return nil, errNotLoggedIn
	}
	return session, nil
}
