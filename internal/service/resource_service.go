package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/marwan404/StudyHub/internal/describe"
	apperrors "github.com/marwan404/StudyHub/internal/errors"
	"github.com/marwan404/StudyHub/internal/model"
	"github.com/marwan404/StudyHub/internal/repository"
)

// Describer produces a short description for a resource.
type Describer interface {
	Describe(ctx context.Context, name, resourceURL string) (string, error)
}

var fallbackIconColors = []string{"#6366f1", "#8b5cf6", "#10b981", "#f59e0b", "#ef4444", "#06b6d4"}

type ResourceService struct {
	repo      *repository.ResourceRepository
	kv        *repository.KVRepository
	describer Describer
	clock     func() time.Time
}

type ResourceInput struct {
	Name         string
	URL          string
	Description  string
	Tags         []string
	AutoDescribe bool
}

func NewResourceService(repo *repository.ResourceRepository, kv *repository.KVRepository, describer Describer) *ResourceService {
	return &ResourceService{
		repo:      repo,
		kv:        kv,
		describer: describer,
		clock:     time.Now,
	}
}

// List returns resources in display order, filtered by query when it is not
// empty. Matching is case-insensitive on name, description and tags.
func (s *ResourceService) List(ctx context.Context, query string) ([]model.Resource, *apperrors.APIError) {
	resources, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("resources: %v", err)
		return nil, apperrors.Internal("failed to list resources")
	}
	return filterResources(resources, query), nil
}

func (s *ResourceService) Create(ctx context.Context, input ResourceInput) (*model.Resource, *apperrors.APIError) {
	now := s.clock().UTC()
	resource := model.Resource{
		ID:        uuid.NewString(),
		DateAdded: now,
		UpdatedAt: now,
	}
	if apiErr := s.apply(ctx, &resource, input); apiErr != nil {
		return nil, apiErr
	}

	if err := s.repo.Create(ctx, &resource); err != nil {
		log.Printf("resources: %v", err)
		return nil, apperrors.Internal("failed to create resource")
	}
	return &resource, nil
}

// Update replaces the editable fields and regenerates the logo. Visits,
// position and dateAdded are kept.
func (s *ResourceService) Update(ctx context.Context, id string, input ResourceInput) (*model.Resource, *apperrors.APIError) {
	resource, err := s.repo.Get(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("resource_not_found", "resource not found")
	}
	if err != nil {
		log.Printf("resources: %v", err)
		return nil, apperrors.Internal("failed to get resource")
	}

	if apiErr := s.apply(ctx, resource, input); apiErr != nil {
		return nil, apiErr
	}
	resource.UpdatedAt = s.clock().UTC()

	if err := s.repo.Update(ctx, resource); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("resource_not_found", "resource not found")
		}
		log.Printf("resources: %v", err)
		return nil, apperrors.Internal("failed to update resource")
	}
	return resource, nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) *apperrors.APIError {
	err := s.repo.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return apperrors.NotFound("resource_not_found", "resource not found")
	}
	if err != nil {
		log.Printf("resources: %v", err)
		return apperrors.Internal("failed to delete resource")
	}
	return nil
}

// Visit counts one open of the resource and returns it with the new count.
func (s *ResourceService) Visit(ctx context.Context, id string) (*model.Resource, *apperrors.APIError) {
	err := s.repo.IncrementVisits(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("resource_not_found", "resource not found")
	}
	if err != nil {
		log.Printf("resources: %v", err)
		return nil, apperrors.Internal("failed to record visit")
	}

	resource, err := s.repo.Get(ctx, id)
	if err != nil {
		log.Printf("resources: %v", err)
		return nil, apperrors.Internal("failed to get resource")
	}
	return resource, nil
}

// Reorder applies a new display order. ids must name every resource exactly once.
func (s *ResourceService) Reorder(ctx context.Context, ids []string) ([]model.Resource, *apperrors.APIError) {
	resources, err := s.repo.List(ctx)
	if err != nil {
		log.Printf("resources: %v", err)
		return nil, apperrors.Internal("failed to list resources")
	}

	known := make(map[string]struct{}, len(resources))
	for _, resource := range resources {
		known[resource.ID] = struct{}{}
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return nil, apperrors.BadRequest("invalid_order", fmt.Sprintf("unknown resource %q", id))
		}
		if _, dup := seen[id]; dup {
			return nil, apperrors.BadRequest("invalid_order", fmt.Sprintf("resource %q listed twice", id))
		}
		seen[id] = struct{}{}
	}
	if len(seen) != len(known) {
		return nil, apperrors.BadRequest("invalid_order", "order must list every resource")
	}

	if err := s.repo.Reorder(ctx, ids); err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.Conflict("invalid_order", "resources changed while reordering", nil)
		}
		log.Printf("resources: %v", err)
		return nil, apperrors.Internal("failed to reorder resources")
	}

	return s.List(ctx, "")
}

// Describe asks the generator for a description. Without a generator the
// default description is returned.
func (s *ResourceService) Describe(ctx context.Context, name, rawURL string) (string, *apperrors.APIError) {
	name = strings.TrimSpace(name)
	rawURL = strings.TrimSpace(rawURL)
	if name == "" || rawURL == "" {
		return "", apperrors.BadRequest("missing_fields", "name and url are required")
	}

	if s.describer == nil {
		return defaultDescription(name), nil
	}
	text, err := s.describer.Describe(ctx, name, NormalizeURL(rawURL))
	if errors.Is(err, describe.ErrDisabled) {
		return defaultDescription(name), nil
	}
	if err != nil {
		log.Printf("resources: describe %s: %v", name, err)
		return "", apperrors.Upstream("describe_failed", "could not generate a description")
	}
	return text, nil
}

// SeedDefaults adds the starter resources the first time the library is opened.
func (s *ResourceService) SeedDefaults(ctx context.Context) error {
	_, err := s.kv.Get(ctx, repository.KeySeeded)
	if err == nil {
		return nil
	}
	if err != repository.ErrNotFound {
		return err
	}

	now := s.clock().UTC()
	count, _, err := s.repo.Totals(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		for i, seed := range starterResources() {
			resource := model.Resource{
				ID:          uuid.NewString(),
				Name:        seed.Name,
				URL:         seed.URL,
				Description: seed.Description,
				Logo:        GenerateLogo(seed.URL),
				Tags:        seed.Tags,
				DateAdded:   now.Add(time.Duration(i-1) * 24 * time.Hour),
				UpdatedAt:   now,
			}
			if err := s.repo.Create(ctx, &resource); err != nil {
				return err
			}
		}
	}
	return s.kv.Put(ctx, repository.KeySeeded, now.Format(time.RFC3339))
}

func (s *ResourceService) apply(ctx context.Context, resource *model.Resource, input ResourceInput) *apperrors.APIError {
	name := strings.TrimSpace(input.Name)
	rawURL := strings.TrimSpace(input.URL)
	if name == "" || rawURL == "" {
		return apperrors.BadRequest("missing_fields", "name and url are required")
	}

	resource.Name = name
	resource.URL = NormalizeURL(rawURL)
	resource.Logo = GenerateLogo(resource.URL)
	resource.Tags = NormalizeTags(input.Tags)

	description := strings.TrimSpace(input.Description)
	if description == "" && input.AutoDescribe && s.describer != nil {
		generated, err := s.describer.Describe(ctx, name, resource.URL)
		if err != nil && !errors.Is(err, describe.ErrDisabled) {
			log.Printf("resources: describe %s: %v", name, err)
		}
		description = generated
	}
	if description == "" {
		description = defaultDescription(name)
	}
	resource.Description = description
	return nil
}

func defaultDescription(name string) string {
	return fmt.Sprintf("Access %s for your studies", name)
}

// NormalizeURL prefixes https:// when the URL has no http(s) scheme.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// NormalizeTags lowercases tags, strips everything but [a-z0-9-] and drops
// empty and repeated tags, keeping first-seen order.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		var b strings.Builder
		for _, r := range strings.ToLower(tag) {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
				b.WriteRune(r)
			}
		}
		clean := b.String()
		if clean == "" {
			continue
		}
		if _, ok := seen[clean]; ok {
			continue
		}
		seen[clean] = struct{}{}
		normalized = append(normalized, clean)
	}
	return normalized
}

// GenerateLogo points at the favicon service for the URL's host, or returns
// an inline SVG letter icon when the URL has no host.
func GenerateLogo(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return fallbackIcon(rawURL)
	}
	return "https://www.google.com/s2/favicons?sz=64&domain=" + parsed.Hostname()
}

func fallbackIcon(text string) string {
	letter := "S"
	if r, _ := utf8.DecodeRuneInString(text); r != utf8.RuneError {
		letter = string(unicode.ToUpper(r))
	}
	color := fallbackIconColors[len(text)%len(fallbackIconColors)]
	svg := fmt.Sprintf(
		`<svg width="64" height="64" viewBox="0 0 64 64" xmlns="http://www.w3.org/2000/svg"><rect width="64" height="64" rx="12" fill="%s"/><text x="32" y="40" font-family="Inter, sans-serif" font-size="24" font-weight="600" fill="white" text-anchor="middle" dominant-baseline="middle">%s</text></svg>`,
		color,
		letter,
	)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func filterResources(resources []model.Resource, query string) []model.Resource {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return resources
	}

	filtered := make([]model.Resource, 0, len(resources))
	for _, resource := range resources {
		if matchesQuery(resource, query) {
			filtered = append(filtered, resource)
		}
	}
	return filtered
}

func matchesQuery(resource model.Resource, query string) bool {
	if strings.Contains(strings.ToLower(resource.Name), query) ||
		strings.Contains(strings.ToLower(resource.Description), query) {
		return true
	}
	for _, tag := range resource.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

type starterResource struct {
	Name        string
	URL         string
	Description string
	Tags        []string
}

func starterResources() []starterResource {
	return []starterResource{
		{
			Name:        "Notion",
			URL:         "https://notion.so",
			Description: "All-in-one workspace for notes, tasks, and project management. Perfect for organizing your study materials.",
			Tags:        []string{"productivity", "notes", "planning"},
		},
		{
			Name:        "Edexcel Portal",
			URL:         "https://qualifications.pearson.com",
			Description: "Official Edexcel qualifications portal for past papers, specifications, and exam resources.",
			Tags:        []string{"exams", "edexcel", "past-papers"},
		},
	}
}
