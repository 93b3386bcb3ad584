package auth

import (
	"net/http"

	"github.com/FMG-lab/surya-painting/internal/apierror"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Gate is the single shared authorization check used by every protected
// route. It writes the 401/403 response itself and aborts the chain, so a
// handler behind it can never produce a second response for a denied
// request.
type Gate struct {
	resolver *Resolver
}

func NewGate(resolver *Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// Require rejects requests whose resolved role is not in the allow-list.
// No identity → 401; identity with a role outside the list → 403. On
// success the Identity is stored in the context for the handler.
func (g *Gate) Require(roles ...Role) gin.HandlerFunc {
	allowed := make(map[Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		ident := g.resolver.Resolve(c)
		if ident == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Unauthenticated"))
			return
		}
		if !allowed[ident.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Forbidden"))
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// Optional resolves an identity if one is present but never rejects —
// used by role-scoped public reads (e.g. the branch list).
func (g *Gate) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ident := g.resolver.Resolve(c); ident != nil {
			c.Set(identityKey, ident)
		}
		c.Next()
	}
}

// IdentityFrom retrieves the gate-resolved Identity, or nil when the route
// ran without one.
func IdentityFrom(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*Identity)
	return ident
}
