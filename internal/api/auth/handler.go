package auth

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"teranga-pro/config"
	"teranga-pro/database"
	"teranga-pro/internal/domain/pros"
	"teranga-pro/internal/domain/users"
	"teranga-pro/internal/infra/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var phonePattern = regexp.MustCompile(`^\+?\d{8,15}$`)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func signToken(user *users.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"phone":   user.Phone,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	})
	return token.SignedString([]byte(config.JWT_SECRET))
}

func issueOTP(tx *gorm.DB, phone string) error {
	// One pending code per phone
	tx.Where("phone = ?", phone).Delete(&users.WhatsAppOTP{})

	otp := users.NewOTP(phone, time.Now())
	if err := tx.Create(&otp).Error; err != nil {
		return err
	}
	return whatsapp.SendOTP(phone, otp.Code)
}

// Register creates a user and, for professionals, an unpublished profile.
// The account stays WhatsApp-unverified until the OTP is confirmed.
func Register(c *gin.Context) {
	var input struct {
		Phone        string `json:"phone" binding:"required"`
		Password     string `json:"password" binding:"required"`
		Role         string `json:"role"`
		BusinessName string `json:"business_name"`
		JobID        uint   `json:"job_id"`
		LocationID   uint   `json:"location_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone := users.NormalizePhone(input.Phone)
	if !phonePattern.MatchString(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Numéro de téléphone invalide"})
		return
	}
	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le mot de passe doit contenir au moins 8 caractères, avec lettres et chiffres"})
		return
	}

	role := users.RoleClient
	if input.Role == users.RolePro {
		role = users.RolePro
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	user := users.User{
		Phone:    phone,
		Password: &hashed,
		Role:     role,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if role == users.RolePro {
			profile := pros.ProProfile{
				UserID:        user.ID,
				BusinessName:  input.BusinessName,
				JobID:         input.JobID,
				LocationID:    input.LocationID,
				IsPublished:   false,
				WhatsappPhone: phone,
				CallPhone:     phone,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			if profile.JobID != 0 {
				tx.First(&profile.Job, profile.JobID)
			}
			if profile.LocationID != 0 {
				tx.First(&profile.Location, profile.LocationID)
			}
			if _, err := pros.EnsureSlug(tx, &profile); err != nil {
				return err
			}
		}
		return issueOTP(tx, phone)
	})
	if err != nil {
		fmt.Println("❌ Register error:", err)
		c.JSON(http.StatusConflict, gin.H{"error": "Ce numéro est peut-être déjà utilisé"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Compte créé. Un code de vérification a été envoyé sur WhatsApp.",
		"phone":   phone,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone := users.NormalizePhone(input.Phone)

	var user users.User
	if err := database.DB.Where("phone = ?", phone).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Compte désactivé"})
		return
	}
	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	tokenString, err := signToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":             tokenString,
		"role":              user.Role,
		"whatsapp_verified": user.WhatsappVerified,
	})
}

// VerifyWhatsapp confirms the OTP sent at registration. Wrong codes count
// toward a lockout; a verified account receives its token immediately.
func VerifyWhatsapp(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone := users.NormalizePhone(input.Phone)

	var otp users.WhatsAppOTP
	if err := database.DB.Where("phone = ?", phone).Order("created_at DESC").First(&otp).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun code en attente pour ce numéro"})
		return
	}

	now := time.Now()
	if otp.IsLocked(now) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de tentatives. Réessayez dans 15 minutes."})
		return
	}
	if otp.IsExpired(now) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code expiré. Demandez un nouveau code."})
		return
	}

	if otp.Code != input.Code {
		locked := otp.RegisterFailure(now)
		database.DB.Save(&otp)
		if locked {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de tentatives. Réessayez dans 15 minutes."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Code incorrect"})
		return
	}

	var user users.User
	if err := database.DB.Where("phone = ?", phone).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("whatsapp_verified", true).Error; err != nil {
			return err
		}
		return tx.Delete(&otp).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la vérification"})
		return
	}
	user.WhatsappVerified = true

	tokenString, err := signToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Numéro WhatsApp vérifié",
		"token":   tokenString,
		"role":    user.Role,
	})
}

func ResendOTP(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	phone := users.NormalizePhone(input.Phone)

	var user users.User
	if err := database.DB.Where("phone = ?", phone).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	if user.WhatsappVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Numéro déjà vérifié"})
		return
	}

	// Keep the lockout across resends
	var last users.WhatsAppOTP
	if err := database.DB.Where("phone = ?", phone).Order("created_at DESC").First(&last).Error; err == nil {
		if last.IsLocked(time.Now()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de tentatives. Réessayez dans 15 minutes."})
			return
		}
	}

	if err := issueOTP(database.DB, phone); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de l'envoi du code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Nouveau code envoyé sur WhatsApp"})
}

func ChangePassword(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if !isPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le nouveau mot de passe doit contenir au moins 8 caractères, avec lettres et chiffres"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	if user.Password == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(body.OldPassword)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Ancien mot de passe incorrect"})
		return
	}

	hashedNew, _ := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	database.DB.Model(&user).Update("password", string(hashedNew))

	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe modifié"})
}

// UpdateMe edits the account itself. Phone is the login identity and only
// changes through a fresh OTP verification, so it is not editable here.
func UpdateMe(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if input.Email != nil {
		if err := database.DB.Model(&user).Update("email", input.Email).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Cet email est peut-être déjà utilisé"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Compte mis à jour"})
}

func Me(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                user.ID,
		"phone":             user.Phone,
		"email":             user.Email,
		"role":              user.Role,
		"whatsapp_verified": user.WhatsappVerified,
		"is_active":         user.IsActive,
		"created_at":        user.CreatedAt,
	})
}
