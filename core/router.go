package core

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired. The same account
// handlers serve both API generations; the v2 group is role-gated by the
// access rules, not by per-group middleware.
func NewRouter(cfg Config, auth *Authenticator, policy *PolicyEngine, store AccountStore) *gin.Engine {
	startedAt := time.Now()
	r := gin.New()

	r.Use(gin.Logger())
	// Panics must surface as the same envelope as every other internal
	// failure, so the stock bodyless recovery is not enough.
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		respondError(c, http.StatusInternalServerError, "An unexpected error occurred", nil)
		c.Abort()
	}))
	r.Use(AccessControlMiddleware(auth, policy))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerAccountRoutes(r.Group("/api/v1/accounts"), store)
	registerAccountRoutes(r.Group("/api/v2/accounts"), store)

	r.GET("/openapi.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, apiDescription)
	})
	r.GET("/docs", func(c *gin.Context) {
		c.JSON(http.StatusOK, apiDescription)
	})

	r.GET("/internal/status", func(c *gin.Context) {
		st := CollectSystemStatus(c.Request.Context(), cfg.AccountStore, store, startedAt)
		c.JSON(http.StatusOK, st)
	})

	return r
}

func registerAccountRoutes(g *gin.RouterGroup, store AccountStore) {
	g.POST("", func(c *gin.Context) {
		req, ok := bindAccountRequest(c)
		if !ok {
			return
		}
		a, err := store.Create(c.Request.Context(), req)
		if err != nil {
			respondFailure(c, err)
			return
		}
		log.Printf("account %d created by %s", a.ID, actorName(c))
		c.JSON(http.StatusCreated, a)
	})

	g.GET("/:id", func(c *gin.Context) {
		id, ok := parseAccountID(c)
		if !ok {
			return
		}
		a, err := store.FindByID(c.Request.Context(), id)
		if err != nil {
			respondFailure(c, storeFailure(id, err))
			return
		}
		c.JSON(http.StatusOK, a)
	})

	g.GET("", func(c *gin.Context) {
		accounts, err := store.FindAll(c.Request.Context())
		if err != nil {
			respondFailure(c, err)
			return
		}
		c.JSON(http.StatusOK, accounts)
	})

	g.PUT("/:id", func(c *gin.Context) {
		id, ok := parseAccountID(c)
		if !ok {
			return
		}
		req, ok := bindAccountRequest(c)
		if !ok {
			return
		}
		a, err := store.Update(c.Request.Context(), id, req)
		if err != nil {
			respondFailure(c, storeFailure(id, err))
			return
		}
		log.Printf("account %d updated by %s", a.ID, actorName(c))
		c.JSON(http.StatusOK, a)
	})

	g.DELETE("/:id", func(c *gin.Context) {
		id, ok := parseAccountID(c)
		if !ok {
			return
		}
		if err := store.Delete(c.Request.Context(), id); err != nil {
			respondFailure(c, storeFailure(id, err))
			return
		}
		log.Printf("account %d deleted by %s", id, actorName(c))
		c.Status(http.StatusNoContent)
	})
}

// bindAccountRequest decodes and validates the account payload, responding
// itself on failure. Unparseable bodies and constraint violations are
// distinct failure categories.
func bindAccountRequest(c *gin.Context) (AccountRequest, bool) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, MalformedRequestError{Detail: "request body could not be parsed"})
		return AccountRequest{}, false
	}
	if violations := ValidateAccountRequest(req); len(violations) > 0 {
		respondFailure(c, ValidationFailure{Details: validationDetails(violations)})
		return AccountRequest{}, false
	}
	return req, true
}

// parseAccountID reads the id path parameter, responding with a 400 when it
// is not a positive integer.
func parseAccountID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondFailure(c, MalformedRequestError{Field: "id", Detail: "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// storeFailure maps the store's not-found sentinel onto the taxonomy,
// attaching the id the client asked for.
func storeFailure(id int64, err error) error {
	if errors.Is(err, ErrAccountNotFound) {
		return NotFoundError{ID: id}
	}
	return err
}

// apiDescription is the static metadata document served in place of a full
// OpenAPI toolchain.
var apiDescription = gin.H{
	"title":   "Accounts API",
	"version": "2.0",
	"paths": []gin.H{
		{"method": "POST", "path": "/api/{v1|v2}/accounts", "description": "Create account", "success": 201},
		{"method": "GET", "path": "/api/{v1|v2}/accounts/{id}", "description": "Get account by id", "success": 200},
		{"method": "GET", "path": "/api/{v1|v2}/accounts", "description": "List accounts", "success": 200},
		{"method": "PUT", "path": "/api/{v1|v2}/accounts/{id}", "description": "Update account", "success": 200},
		{"method": "DELETE", "path": "/api/{v1|v2}/accounts/{id}", "description": "Delete account", "success": 204},
	},
	"auth": gin.H{
		"scheme": "basic",
		"v1":     "open",
		"v2":     "GET requires admin or viewer; other methods require admin",
	},
}
