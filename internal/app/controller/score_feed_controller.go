package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/marcp/critics-eye-backend/internal/middleware"
	ws "github.com/marcp/critics-eye-backend/internal/websocket"
)

type ScoreFeedController struct {
	hub      *ws.Hub
	upgrader *websocket.Upgrader
}

func NewScoreFeedController(hub *ws.Hub, upgrader *websocket.Upgrader) *ScoreFeedController {
	return &ScoreFeedController{
		hub:      hub,
		upgrader: upgrader,
	}
}

// Subscribe upgrades to a websocket that receives score_updated events
// GET /api/ws/scores?token=
func (ctrl *ScoreFeedController) Subscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	// the upgrader has already answered the request on failure
	if err := ctrl.hub.Serve(ctrl.upgrader, c.Writer, c.Request, userID); err != nil {
		return
	}

	middleware.GetLoggerFromContext(c).Debug("Score feed subscribed", map[string]interface{}{
		"user_id":     userID,
		"subscribers": ctrl.hub.ClientCount(),
	})
}
