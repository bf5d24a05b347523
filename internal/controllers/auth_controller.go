package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"crown_transport/internal/config"
	"crown_transport/internal/middleware"
	"crown_transport/internal/models"
)

var errBadActor = errors.New("invalid actor details")

type signupInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	LicenseNumber string `json:"license_number"`
	VendorID      uint   `json:"vendor_id"`
}

func SignupUser(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := validateAndNormalizeRole(input.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.Role = role

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	var user models.User
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: hashedPassword,
			Phone:    input.Phone,
			Role:     input.Role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return createActorRecord(tx, &user, input)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.Code == "23505":
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
		case errors.Is(err, errBadActor):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		}
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

func LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", body.Email).Preload("Driver").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found or invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  prepareUserResponse(user),
	})
}

func validateAndNormalizeRole(roleInput string) (string, error) {
	role := strings.ToLower(strings.TrimSpace(roleInput))
	if role == "" {
		role = "driver"
	}
	switch role {
	case "admin", "driver":
		return role, nil
	default:
		return "", errors.New("invalid role")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// createActorRecord attaches the driver profile for driver signups. Only the
// first admin may sign up on their own.
func createActorRecord(tx *gorm.DB, user *models.User, input signupInput) error {
	if user.Role == "admin" {
		var admins int64
		if err := tx.Model(&models.User{}).Where("role = ? AND id <> ?", "admin", user.ID).Count(&admins).Error; err != nil {
			return err
		}
		if admins > 0 {
			return fmt.Errorf("%w: admin signup is closed", errBadActor)
		}
		return nil
	}
	if input.LicenseNumber == "" {
		return fmt.Errorf("%w: license_number is required for driver role", errBadActor)
	}
	if input.VendorID == 0 {
		return fmt.Errorf("%w: driver must be assigned to a vendor_id", errBadActor)
	}
	var vendor models.Vendor
	if err := tx.First(&vendor, input.VendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: vendor with the provided vendor_id does not exist", errBadActor)
		}
		return err
	}

	driver := models.Driver{
		UserID:        &user.ID,
		Name:          input.Name,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		VendorID:      input.VendorID,
	}
	if err := tx.Create(&driver).Error; err != nil {
		return err
	}
	user.Driver = &driver
	return nil
}

func prepareUserResponse(user models.User) gin.H {
	responseUser := gin.H{
		"ID":        user.ID,
		"CreatedAt": user.CreatedAt,
		"UpdatedAt": user.UpdatedAt,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
	}
	if user.Driver != nil {
		responseUser["driver"] = gin.H{
			"ID":             user.Driver.ID,
			"name":           user.Driver.Name,
			"phone":          user.Driver.Phone,
			"license_number": user.Driver.LicenseNumber,
			"vendor_id":      user.Driver.VendorID,
		}
	}
	return responseUser
}
