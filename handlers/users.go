package handlers

import (
	"crypto/rand"
	"math/big"
	"net/http"

	"team-eats/config"
	"team-eats/middleware"
	"team-eats/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type CreateUserRequest struct {
	FullName string          `json:"full_name"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role" binding:"required"`
	Country  string          `json:"country"`
}

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

func generateRandomPassword(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range b {
		n, _ := rand.Int(rand.Reader, max)
		b[i] = passwordAlphabet[n.Int64()]
	}
	return string(b)
}

// ListUsers returns all users — admin only
func ListUsers(c *gin.Context) {
	users := []models.User{}
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, users)
}

// GetUser returns a single user — admin only
func GetUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser creates an account at any role — admin only. A random password
// is generated when none is supplied and returned once in the response.
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: admin, manager, or team_member"})
		return
	}

	var existing models.User
	if result := config.DB.Where("email = ?", req.Email).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	password := req.Password
	generated := false
	if password == "" {
		password = generateRandomPassword(12)
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		UserUID:      uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Country:      req.Country,
		IsActive:     true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	resp := gin.H{"user": user}
	if generated {
		resp["generated_password"] = password
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateUserRole escalates or degrades a user's role — admin only. Takes
// effect on the user's next issued token.
func UpdateUserRole(c *gin.Context) {
	adminID := middleware.GetUserID(c)

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidRoles[req.Role] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: admin, manager, or team_member"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.ID == adminID && req.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot demote your own admin account"})
		return
	}

	if err := config.DB.Model(&user).Update("role", req.Role).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	user.Role = req.Role

	c.JSON(http.StatusOK, user)
}
