package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type savedSession struct {
	BaseURL string        `json:"base_url"`
	SavedAt time.Time     `json:"saved_at"`
	Cookies []savedCookie `json:"cookies"`
}

// SaveSession writes the cookies the jar holds for the API to path with 0600 permissions.
// An empty jar removes the file.
func (c *Client) SaveSession(path string) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}

	cookies := c.jar.Cookies(u)
	if len(cookies) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}

	out := savedSession{BaseURL: c.baseURL, SavedAt: time.Now().UTC()}
	for _, ck := range cookies {
		out.Cookies = append(out.Cookies, savedCookie{Name: ck.Name, Value: ck.Value})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return os.Chmod(path, 0o600)
}

// LoadSession restores cookies saved for the same API root. A missing file is not an error.
func (c *Client) LoadSession(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var in savedSession
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to decode session file: %w", err)
	}
	if in.BaseURL != c.baseURL {
		c.logger.Debug("ignoring session saved for another server", "saved", in.BaseURL, "current", c.baseURL)
		return nil
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return err
	}
	cookies := make([]*http.Cookie, 0, len(in.Cookies))
	for _, ck := range in.Cookies {
		cookies = append(cookies, &http.Cookie{Name: ck.Name, Value: ck.Value, Path: "/"})
	}
	c.jar.SetCookies(u, cookies)
	return nil
}
