package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hiring-service/internal/api/dto"
	"github.com/spec-kit/hiring-service/internal/auth"
	"github.com/spec-kit/hiring-service/internal/service"
	apperrors "github.com/spec-kit/hiring-service/pkg/util/errorutil"
)

// CandidateHandler exposes candidate profile endpoints.
type CandidateHandler struct {
	candidates *service.CandidateService
}

// NewCandidateHandler constructs handler.
func NewCandidateHandler(candidates *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

// SaveProfile handles POST /candidate/profile.
func (h *CandidateHandler) SaveProfile(c *fiber.Ctx) error {
	principal, ok := auth.CurrentPrincipal(c)
	if !ok {
		return apperrors.NewUnauthorized("Full authentication is required to access this resource")
	}

	var req dto.CandidateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewBadRequest("invalid payload")
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	profile, err := h.candidates.SaveProfile(c.UserContext(), principal, service.ProfileInput{
		FullName:        req.FullName,
		Email:           req.Email,
		TotalExperience: req.TotalExperience,
		Skills:          req.Skills,
		ResumeURL:       req.ResumeURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCandidateProfileResponse(*profile))
}

// GetProfile handles GET /candidate/profile/:userId.
func (h *CandidateHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.candidates.GetProfile(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCandidateProfileResponse(*profile))
}
