package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/seasistemi/deliveryops/internal/wordpress"
)

const postType = "media"

// Service provides business operations on attachments.
type Service struct {
	wp     *wordpress.Client
	logger *slog.Logger
}

// NewService constructs a Service.
func NewService(wp *wordpress.Client, logger *slog.Logger) *Service {
	return &Service{wp: wp, logger: logger}
}

// List returns one page of attachments.
func (s *Service) List(ctx context.Context, q wordpress.ListQuery) (wordpress.ListPage[Media], error) {
	page, err := wordpress.ListPosts[Media](ctx, s.wp, postType, q)
	if err != nil {
		return page, fmt.Errorf("list media: %w", err)
	}
	for i := range page.Data {
		page.Data[i].DecodeTitle()
	}
	return page, nil
}

// ByParent lists the attachments of one post, newest first.
func (s *Service) ByParent(ctx context.Context, parentID string, q wordpress.ListQuery) (wordpress.ListPage[Media], error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = 100
	}
	if q.OrderBy == "" {
		q.OrderBy = "date"
	}
	if q.Order == "" {
		q.Order = "desc"
	}
	q.Filters = append([]wordpress.Filter{{Key: "parent", Value: parentID}}, q.Filters...)
	return s.List(ctx, q)
}

// Get returns a single attachment.
func (s *Service) Get(ctx context.Context, id int) (Media, error) {
	item, err := wordpress.GetPost[Media](ctx, s.wp, postType, id)
	if err != nil {
		return item, fmt.Errorf("get media %d: %w", id, err)
	}
	item.DecodeTitle()
	return item, nil
}

// Upload stores a new attachment. fields carries extra form values such as
// the parent post ID.
func (s *Service) Upload(ctx context.Context, fileName string, file io.Reader, fields map[string]string) (Media, error) {
	item, err := wordpress.Upload[Media](ctx, s.wp, "/wp-json/wp/v2/media", "file", fileName, file, fields)
	if err != nil {
		return item, fmt.Errorf("upload media %s: %w", fileName, err)
	}
	return item, nil
}

// Update modifies attachment metadata.
func (s *Service) Update(ctx context.Context, id int, body any) (Media, error) {
	item, err := wordpress.UpdatePost[Media](ctx, s.wp, postType, id, body)
	if err != nil {
		return item, fmt.Errorf("update media %d: %w", id, err)
	}
	return item, nil
}

// Delete removes an attachment. WordPress requires force deletion for media,
// there is no trash for attachments.
func (s *Service) Delete(ctx context.Context, id int) error {
	params := url.Values{}
	params.Set("force", "true")
	if err := s.wp.DeleteDiscard(ctx, fmt.Sprintf("/wp-json/wp/v2/media/%d", id), params); err != nil {
		return fmt.Errorf("delete media %d: %w", id, err)
	}
	return nil
}
