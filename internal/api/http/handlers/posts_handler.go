package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hiring-service/internal/api/dto"
	"github.com/spec-kit/hiring-service/internal/auth"
	"github.com/spec-kit/hiring-service/internal/service"
	apperrors "github.com/spec-kit/hiring-service/pkg/util/errorutil"
)

// PostsHandler exposes job posting endpoints.
type PostsHandler struct {
	posts *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(posts *service.PostService) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// All handles GET /posts/all.
func (h *PostsHandler) All(c *fiber.Ctx) error {
	postings, err := h.posts.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewJobPostingList(postings))
}

// Search handles GET /posts/search/:text.
func (h *PostsHandler) Search(c *fiber.Ctx) error {
	text, err := url.PathUnescape(c.Params("text"))
	if err != nil {
		return apperrors.NewBadRequest("invalid search text")
	}
	postings, err := h.posts.Search(c.UserContext(), text)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewJobPostingList(postings))
}

// Add handles POST /posts/add.
func (h *PostsHandler) Add(c *fiber.Ctx) error {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		return apperrors.NewUnauthorized("Full authentication is required to access this resource")
	}

	var req dto.JobPostingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	posting, err := h.posts.Add(c.UserContext(), principal, service.PostInput{
		Role:        req.Role,
		Description: req.Description,
		Experience:  req.Experience,
		SkillSet:    req.SkillSet,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewJobPostingResponse(*posting))
}

// Apply handles POST /posts/apply/:jobId.
func (h *PostsHandler) Apply(c *fiber.Ctx) error {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		return apperrors.NewUnauthorized("Full authentication is required to access this resource")
	}
	if err := h.posts.Apply(c.UserContext(), principal, c.Params("jobId")); err != nil {
		return err
	}
	return c.SendString("Application submitted successfully!")
}
