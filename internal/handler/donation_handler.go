package handler

import (
	"net/http"

	"github.com/Frenky19/QRkot-spreadsheets/internal/errno"
	"github.com/Frenky19/QRkot-spreadsheets/internal/logic"
	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationLogic *logic.DonationLogic
}

func NewDonationHandler(donationLogic *logic.DonationLogic) *DonationHandler {
	return &DonationHandler{donationLogic: donationLogic}
}

// CreateDonation 当前用户捐款
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		ErrorResponse(c, errno.ErrTokenInvalid)
		return
	}

	var req DonationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, bindError(err))
		return
	}

	donation, err := h.donationLogic.CreateDonation(c.Request.Context(), user.Id, logic.DonationInput{
		FullAmount: req.FullAmount,
		Comment:    req.Comment,
	})
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Donation created", newDonationResponse(donation))
}

// GetDonations 全部捐款（超级用户）
func (h *DonationHandler) GetDonations(c *gin.Context) {
	donations, err := h.donationLogic.ListDonations(c.Request.Context())
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	out := make([]DonationAdminResponse, len(donations))
	for i := range donations {
		out[i] = newDonationAdminResponse(&donations[i])
	}
	SuccessResponse(c, http.StatusOK, "", out)
}

// GetMyDonations 当前用户的捐款
func (h *DonationHandler) GetMyDonations(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		ErrorResponse(c, errno.ErrTokenInvalid)
		return
	}

	donations, err := h.donationLogic.ListUserDonations(c.Request.Context(), user.Id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	out := make([]DonationResponse, len(donations))
	for i := range donations {
		out[i] = newDonationResponse(&donations[i])
	}
	SuccessResponse(c, http.StatusOK, "", out)
}
