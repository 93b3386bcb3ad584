package auth

import (
	"context"
	"strings"

	"github.com/FMG-lab/surya-painting/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// DefaultOverrideID is the sentinel identity id used when the role-override
// header carries no explicit x-user-id.
const DefaultOverrideID = "mock-user"

// TokenVerifier resolves a bearer token to a user id via the external auth
// service. Implemented by infra.AuthClient.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// UserDirectory looks up a stored user (role, branch scope) by id.
// Implemented by the store in live mode.
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// Resolver extracts an Identity from a request. Resolution order:
//
//  1. x-user-role / x-user-id override headers (only without a live verifier)
//  2. bearer token against the static dev token map (same condition)
//  3. bearer token against the live verifier, then a role lookup by user id
//
// Resolution has no side effects and never fails a request by itself: a
// missing or malformed credential simply resolves to no identity.
type Resolver struct {
	verifier TokenVerifier // nil when no live auth service is configured
	users    UserDirectory
	static   map[string]Identity
}

func NewResolver(verifier TokenVerifier, users UserDirectory) *Resolver {
	return &Resolver{
		verifier: verifier,
		users:    users,
		// Static token map for environments without a live auth service.
		static: map[string]Identity{
			"admin-token":   {ID: "admin", Role: RoleAdmin},
			"manager-token": {ID: "manager", Role: RoleManager},
			"tech-token":    {ID: "tech", Role: RoleTechnician},
		},
	}
}

// Resolve returns the caller's Identity, or nil when none can be resolved.
func (r *Resolver) Resolve(c *gin.Context) *Identity {
	// Override headers and static tokens are dev/test conveniences — they
	// are structurally unavailable once a live verifier is configured.
	if r.verifier == nil {
		if role := c.GetHeader("x-user-role"); role != "" {
			id := c.GetHeader("x-user-id")
			if id == "" {
				id = DefaultOverrideID
			}
			parsed, ok := ParseRole(role)
			if !ok {
				return nil
			}
			return &Identity{ID: id, Role: parsed}
		}
	}

	token, ok := bearerToken(c)
	if !ok {
		return nil
	}

	if r.verifier == nil {
		if ident, ok := r.static[token]; ok {
			return &ident
		}
		return nil
	}

	ctx := c.Request.Context()
	userID, err := r.verifier.VerifyToken(ctx, token)
	if err != nil {
		log.Debug().Err(err).Msg("token verification failed")
		return nil
	}

	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		log.Debug().Str("user_id", userID).Err(err).Msg("role lookup failed")
		return nil
	}
	role, ok := ParseRole(user.Role)
	if !ok {
		log.Warn().Str("user_id", userID).Str("role", user.Role).Msg("user has unknown role")
		return nil
	}
	return &Identity{ID: user.ID, Role: role, BranchID: user.BranchID}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(header, "Bearer ")
	return token, token != ""
}
