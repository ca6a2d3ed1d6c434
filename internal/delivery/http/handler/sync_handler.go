package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/place-service/internal/pkg/utils"
	"github.com/place-service/internal/usecase"
	"go.uber.org/zap"
)

// SyncHandler exposes provider synchronization over HTTP.
type SyncHandler struct {
	syncUC *usecase.SyncUseCase
	logger *zap.Logger
}

func NewSyncHandler(syncUC *usecase.SyncUseCase, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		syncUC: syncUC,
		logger: logger,
	}
}

// Run handles GET /places/google-places and triggers a full
// synchronization run.
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	result, err := h.syncUC.Run(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Status handles GET /places/sync/status and reports the most recent
// run.
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	result, err := h.syncUC.LastRun(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	if result == nil {
		return utils.SendSuccess(c, fiber.Map{"message": "No synchronization run recorded"}, nil)
	}

	return utils.SendSuccess(c, result, nil)
}
