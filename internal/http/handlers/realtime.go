package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyhours-backend/internal/platform/logger"
	"github.com/yungbote/studyhours-backend/internal/realtime"
)

type RealtimeHandler struct {
	Log *logger.Logger
	Hub *realtime.Hub
}

func NewRealtimeHandler(log *logger.Logger, hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{Log: log.With("handler", "RealtimeHandler"), Hub: hub}
}

// GET /api/events
// Every connection for a user listens on that user's channel.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	uid := userID(c)
	client := h.Hub.NewClient(uid)
	h.Hub.AddChannel(client, uid)
	h.Log.Debug("event stream open", "user_id", uid, "client_id", client.ID)

	h.Hub.ServeHTTP(c.Writer, c.Request, client)

	h.Hub.CloseClient(client)
	h.Log.Debug("event stream closed", "user_id", uid, "client_id", client.ID)
}
