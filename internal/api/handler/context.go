package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ctxUserID extracts the authenticated user id injected by the Auth
// middleware. Its presence proves the middleware ran; a handler wired into
// the authenticated group without it is a routing bug, surfaced as 401
// rather than a panic.
func ctxUserID(c echo.Context) (primitive.ObjectID, error) {
	userID, ok := c.Get("user_id").(primitive.ObjectID)
	if !ok || userID.IsZero() {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}

// pathObjectID parses a hex ObjectID path parameter, rejecting malformed
// ids with 400 before any service call.
func pathObjectID(c echo.Context, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
