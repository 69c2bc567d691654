package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/juan-beltranos/catalogo-interactivo/internal/domain"
)

const (
	ctxMerchant    = "merchant"
	ctxStore       = "store"
	ctxAccessToken = "accessToken"
)

// requireAuth resolves the Bearer token to a merchant and aborts with 401
// otherwise.
func requireAuth(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		m, err := accounts.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxMerchant, m)
		c.Set(ctxAccessToken, token)
		c.Next()
	}
}

// requireStore loads the authenticated merchant's store. Merchants that
// have not registered a store yet get a 404 pointing at POST /api/store.
func requireStore(stores StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		m := currentMerchant(c)
		st, err := stores.GetByOwner(c.Request.Context(), m.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "store not registered"})
			return
		}
		c.Set(ctxStore, st)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func currentMerchant(c *gin.Context) *domain.Merchant {
	return c.MustGet(ctxMerchant).(*domain.Merchant)
}

func currentStore(c *gin.Context) *domain.Store {
	return c.MustGet(ctxStore).(*domain.Store)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signupHandler(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password required")
			return
		}
		m, err := accounts.Signup(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"merchant": m})
	}
}

func loginHandler(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email and password required")
			return
		}
		m, access, refresh, err := accounts.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"merchant":     m,
			"accessToken":  access,
			"refreshToken": refresh,
			"expiresIn":    accounts.AccessTTLSeconds(),
		})
	}
}

func refreshHandler(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refreshToken" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "refreshToken required")
			return
		}
		access, err := accounts.Refresh(c.Request.Context(), req.RefreshToken)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"accessToken": access,
			"expiresIn":   accounts.AccessTTLSeconds(),
		})
	}
}

func logoutHandler(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.MustGet(ctxAccessToken).(string)
		if err := accounts.Logout(c.Request.Context(), token); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// meHandler returns the merchant plus their store when one exists.
func meHandler(stores StoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		m := currentMerchant(c)
		resp := gin.H{"merchant": m}
		if st, err := stores.GetByOwner(c.Request.Context(), m.ID); err == nil {
			resp["store"] = st
		}
		c.JSON(http.StatusOK, resp)
	}
}

func forgotPasswordHandler(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "email required")
			return
		}
		token, err := accounts.RequestPasswordReset(c.Request.Context(), req.Email)
		if err != nil {
			writeError(c, err)
			return
		}
		// The token is returned directly; mail delivery is out of scope.
		// The response shape is identical for unknown emails.
		c.JSON(http.StatusAccepted, gin.H{"resetToken": token})
	}
}

func resetPasswordHandler(accounts AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Token       string `json:"token" binding:"required"`
			NewPassword string `json:"newPassword" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "token and newPassword required")
			return
		}
		if err := accounts.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
