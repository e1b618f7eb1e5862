package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/aun009/resourcify/internal/domain"
)

// NewResource is the form payload for sharing a marketplace listing. Image
// is optional.
type NewResource struct {
	Title       string
	Category    string
	Price       string
	Description string
	ImageName   string
	Image       io.Reader
}

// Resources returns the public marketplace listings. Unauthenticated.
func (c *Client) Resources(ctx context.Context) ([]domain.Resource, error) {
	var out []domain.Resource
	if err := c.getJSON(ctx, "/api/resources", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyResources(ctx context.Context) ([]domain.Resource, error) {
	var out []domain.Resource
	if err := c.getJSON(ctx, "/api/resources/my", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostResource shares a listing as multipart form data, matching the
// backend's upload endpoint.
func (c *Client) PostResource(ctx context.Context, res NewResource) (*domain.Resource, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       res.Title,
		"category":    res.Category,
		"price":       res.Price,
		"description": res.Description,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("resource form: %w", err)
		}
	}
	if res.Image != nil {
		part, err := mw.CreateFormFile("image", res.ImageName)
		if err != nil {
			return nil, fmt.Errorf("resource form: %w", err)
		}
		if _, err := io.Copy(part, res.Image); err != nil {
			return nil, fmt.Errorf("resource form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("resource form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/resources", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created domain.Resource
	if err := decodeBody(resp.Body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
