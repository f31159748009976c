package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	obscontext "github.com/roomledger/roomledger/internal/observability/context"
	"github.com/roomledger/roomledger/internal/userctx"
)

// ActorMiddleware copies the authenticated actor from the X-Actor-Id header
// into the request context. Authentication itself happens upstream; this
// service only needs the identity for attribution.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("X-Actor-Id"))
		if raw == "" {
			c.Next()
			return
		}

		actorID, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, errBadActor)
			return
		}

		ctx := userctx.WithActorID(c.Request.Context(), actorID)
		ctx = obscontext.WithActorID(ctx, actorID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireActor rejects mutating requests that carry no actor identity.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := userctx.ActorIDFromContext(c.Request.Context()); !ok {
			AbortWithError(c, errMissingActor)
			return
		}
		c.Next()
	}
}
