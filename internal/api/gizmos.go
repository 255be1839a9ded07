package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/yaozhiwang/chatgpt-sugar/internal/core/model"
)

type gizmoItem struct {
	Resource struct {
		Gizmo model.GPT `json:"gizmo"`
	} `json:"resource"`
}

type gizmoDiscoveryPage struct {
	List struct {
		Items  []gizmoItem `json:"items"`
		Cursor string      `json:"cursor"`
	} `json:"list"`
}

// ListMyGizmos pages through the user's own custom GPTs, following the
// server-supplied cursor until it is absent.
func (c *Client) ListMyGizmos(ctx context.Context) ([]model.GPT, error) {
	var gizmos []model.GPT
	cursor := ""
	for {
		path := "/gizmos/discovery/mine?limit=32"
		if cursor != "" {
			path += "&cursor=" + url.QueryEscape(cursor)
		}

		var page gizmoDiscoveryPage
		if err := c.get(ctx, path, &page); err != nil {
			return nil, fmt.Errorf("failed to list my GPTs: %w", err)
		}

		for _, item := range page.List.Items {
			gizmos = append(gizmos, item.Resource.Gizmo)
		}

		cursor = page.List.Cursor
		if cursor == "" {
			return gizmos, nil
		}
	}
}

type gizmoResponse struct {
	Gizmo model.GPT `json:"gizmo"`
}

// GetGizmo looks up a single custom GPT by id.
func (c *Client) GetGizmo(ctx context.Context, id string) (*model.GPT, error) {
	var resp gizmoResponse
	if err := c.get(ctx, "/gizmos/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp.Gizmo, nil
}

// GetUser fetches the account profile.
func (c *Client) GetUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
