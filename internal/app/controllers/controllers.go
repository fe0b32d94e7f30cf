// Package controllers handles HTTP request handling
package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/middleware"
)

// identityResolver resolves the full application identity for an account id.
type identityResolver interface {
	ResolveSession(ctx context.Context, accountID string) (*models.User, error)
}

// resolveActor loads the acting user for an authenticated request. The token
// carries only the account id; role and center affiliation are read fresh so
// a relinked or removed profile takes effect immediately.
func resolveActor(c *gin.Context, resolver identityResolver) (*models.User, error) {
	return resolver.ResolveSession(c.Request.Context(), c.GetString(middleware.ContextUserID))
}
