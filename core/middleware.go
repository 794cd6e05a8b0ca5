package core

import (
	"log"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AccessControlMiddleware authenticates and authorizes every request before
// it reaches a handler. Credentials, when presented, are verified even on
// open paths; an invalid header is terminal. The failure reason is logged
// for diagnostics but never sent to the client.
func AccessControlMiddleware(auth *Authenticator, policy *PolicyEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var principal *Principal

		if header := c.GetHeader("Authorization"); header != "" {
			p, reason, ok := auth.Authenticate(header)
			if !ok {
				log.Printf("authentication rejected for %s %s: %s", c.Request.Method, c.Request.URL.Path, reason)
				respondFailure(c, AuthenticationError{Reason: reason})
				c.Abort()
				return
			}
			principal = &p
		}

		if err := policy.Authorize(c.Request.URL.Path, c.Request.Method, principal); err != nil {
			respondFailure(c, err)
			c.Abort()
			return
		}

		if principal != nil {
			c.Set(principalKey, *principal)
		}
		c.Next()
	}
}

// principalFrom returns the authenticated principal for the request, if any.
func principalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// actorName labels the request identity for log lines.
func actorName(c *gin.Context) string {
	if p, ok := principalFrom(c); ok {
		return p.Username
	}
	return "anonymous"
}
