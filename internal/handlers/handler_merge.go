package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/bizsuite/expense_ledger_app/internal/core/ports/services"
	"github.com/bizsuite/expense_ledger_app/internal/dto"
	"github.com/bizsuite/expense_ledger_app/internal/middleware"
)

// mergeHandler handles HTTP requests for folding siblings into their parent.
type mergeHandler struct {
	mergeService portssvc.MergeSvcFacade
}

// newMergeHandler creates a new mergeHandler.
func newMergeHandler(ms portssvc.MergeSvcFacade) *mergeHandler {
	return &mergeHandler{
		mergeService: ms,
	}
}

// registerMergeRoutes registers the sibling merge route.
func registerMergeRoutes(rg *gin.RouterGroup, mergeService portssvc.MergeSvcFacade) {
	h := newMergeHandler(mergeService)

	rg.POST("/accounts/:accountID/merge", h.mergeIntoParent)
}

// mergeIntoParent godoc
// @Summary Merge a sibling account into its parent
// @Description Reassigns the sibling's transactions to the parent, transfers any remaining balance (privileged callers only) and deletes the sibling. Not idempotent: a second call returns 404.
// @Tags merge
// @Produce  json
// @Param   accountID path string true "Sibling account ID"
// @Success 200 {object} dto.MergeResponse
// @Failure 400 {object} map[string]string "Account is not a sibling"
// @Failure 403 {object} map[string]string "Non-zero balance requires elevated authorization"
// @Failure 404 {object} map[string]string "Sibling account not found (or already merged)"
// @Failure 409 {object} map[string]string "Concurrent modification conflict"
// @Security BearerAuth
// @Router /accounts/{accountID}/merge [post]
func (h *mergeHandler) mergeIntoParent(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	siblingAccountID := c.Param("accountID")

	userID, ok := middleware.GetUserIDFromContext(c.Request.Context())
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// The privilege flag comes from the platform-issued token, not from the
	// request body, so callers cannot claim it themselves.
	privileged := middleware.IsPrivilegedFromContext(c.Request.Context())

	result, err := h.mergeService.MergeIntoParent(c.Request.Context(), siblingAccountID, privileged, userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to merge sibling account")
		return
	}

	logger.Info("Sibling merge completed",
		slog.String("sibling_id", result.SiblingAccountID),
		slog.String("parent_id", result.ParentAccountID))
	c.JSON(http.StatusOK, dto.ToMergeResponse(result))
}
