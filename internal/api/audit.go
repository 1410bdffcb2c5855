package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"gadgetd/internal/auth"
	"gadgetd/internal/models"
)

// audit records a lifecycle mutation. Failures are logged and swallowed;
// an audit write must never fail the originating request.
func (a *API) audit(r *http.Request, action, object string, details map[string]any) {
	actor := ""
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		actor = claims.UserID
	}

	entry := models.AuditLog{
		Actor:   actor,
		Action:  action,
		Object:  object,
		Details: toJSONMap(details),
		At:      time.Now().UTC(),
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Warn().Err(err).Str("action", action).Str("object", object).Msg("audit write failed")
	}
}

func toJSONMap(src map[string]any) datatypes.JSONMap {
	out := datatypes.JSONMap{}
	for k, v := range src {
		out[k] = v
	}
	return out
}
