package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bornholm/scheduler/internal/http/handler/api"
	"github.com/pkg/errors"
)

func commentsPath(scheduleID string) string {
	return "/schedules/" + url.PathEscape(scheduleID) + "/comments"
}

func (c *Client) CreateComment(ctx context.Context, scheduleID, content string) (*api.Comment, error) {
	var comment api.Comment

	if err := c.request(ctx, http.MethodPost, commentsPath(scheduleID), nil, api.CommentRequest{Content: content}, &comment); err != nil {
		return nil, errors.WithStack(err)
	}

	return &comment, nil
}

func (c *Client) ListComments(ctx context.Context, scheduleID string) ([]api.Comment, error) {
	var comments []api.Comment

	if err := c.request(ctx, http.MethodGet, commentsPath(scheduleID), nil, nil, &comments); err != nil {
		return nil, errors.WithStack(err)
	}

	return comments, nil
}

func (c *Client) DeleteComment(ctx context.Context, scheduleID, commentID string) error {
	if err := c.request(ctx, http.MethodDelete, commentsPath(scheduleID)+"/"+url.PathEscape(commentID), nil, nil, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
