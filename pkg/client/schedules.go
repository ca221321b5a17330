package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bornholm/scheduler/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) CreateSchedule(ctx context.Context, title, content string) (*api.Schedule, error) {
	var schedule api.Schedule

	err := c.request(ctx, http.MethodPost, "/schedules", nil, api.ScheduleRequest{
		Title:   title,
		Content: content,
	}, &schedule)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &schedule, nil
}

func (c *Client) GetSchedule(ctx context.Context, scheduleID string) (*api.Schedule, error) {
	var schedule api.Schedule

	if err := c.request(ctx, http.MethodGet, "/schedules/"+url.PathEscape(scheduleID), nil, nil, &schedule); err != nil {
		return nil, errors.WithStack(err)
	}

	return &schedule, nil
}

// ListSchedules returns the page-th page (one based) of schedule summaries.
func (c *Client) ListSchedules(ctx context.Context, page, size int) (*api.SchedulePageResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var res api.SchedulePageResponse

	if err := c.request(ctx, http.MethodGet, "/schedules/paged", query, nil, &res); err != nil {
		return nil, errors.WithStack(err)
	}

	return &res, nil
}

func (c *Client) UpdateSchedule(ctx context.Context, scheduleID, title, content string) (*api.Schedule, error) {
	var schedule api.Schedule

	err := c.request(ctx, http.MethodPut, "/schedules/"+url.PathEscape(scheduleID), nil, api.ScheduleRequest{
		Title:   title,
		Content: content,
	}, &schedule)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &schedule, nil
}

func (c *Client) DeleteSchedule(ctx context.Context, scheduleID string) error {
	if err := c.request(ctx, http.MethodDelete, "/schedules/"+url.PathEscape(scheduleID), nil, nil, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
