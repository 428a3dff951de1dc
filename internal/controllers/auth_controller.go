package controllers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"meals_on_wheels/internal/metrics"
	"meals_on_wheels/internal/middleware"
	"meals_on_wheels/internal/models"
	"meals_on_wheels/internal/repository"
	"meals_on_wheels/internal/storage"
	"meals_on_wheels/internal/validation"
)

// profileImageDir is where profile pictures land under the upload root.
const profileImageDir = "images"

type TokenIssuer interface {
	GenerateToken(ctx context.Context, userID uint, role string) (string, error)
	RevokeAll(ctx context.Context, userID uint) (int64, error)
}

type AuthController struct {
	Users  repository.UserRepository
	Tokens TokenIssuer
	Images *storage.ImageStore
}

func NewAuthController(users repository.UserRepository, tokens TokenIssuer, images *storage.ImageStore) *AuthController {
	return &AuthController{Users: users, Tokens: tokens, Images: images}
}

func (ac *AuthController) Register(c *gin.Context) {
	log := middleware.Logger(c)
	ctx := c.Request.Context()

	var input validation.RegisterRequest
	if err := c.ShouldBind(&input); err != nil {
		metrics.RecordAuthError("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "422", "error": validation.FromBindError(err, c.Request.Form, &input)})
		return
	}

	errs := input.Validate()
	if errs == nil {
		errs = validation.Errors{}
	}
	if _, bad := errs["email"]; !bad {
		exists, err := ac.Users.EmailExists(ctx, input.Email)
		if err != nil {
			log.WithError(err).Error("email uniqueness check failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check email"})
			return
		}
		if exists {
			errs.Add("email", "The email has already been taken.")
		}
	}

	image := uploadedFile(c, "image")
	if image != nil {
		if err := ac.Images.Validate(image); err != nil {
			errs.Add("image", imageMessage(err, ac.Images.MaxBytes))
		}
	}

	if errs.Any() {
		metrics.RecordAuthError("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "422", "error": errs})
		return
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	role, err := input.Role()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "422", "error": validation.Errors{"type": {"The selected type is invalid."}}})
		return
	}
	rec, err := models.NewRoleRecord(role, input.Attributes())
	if err != nil {
		log.WithError(err).Error("role record factory failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build account"})
		return
	}

	user := &models.User{Name: input.Name, Email: input.Email, Password: hashedPassword, Type: role}
	profile := &models.Profile{Name: input.Name, Address: input.Address, Phone: input.PhoneNumber}

	var stored string
	if image != nil {
		stored, err = ac.Images.Save(image, profileImageDir)
		if err != nil {
			log.WithError(err).Error("could not store profile image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
			return
		}
		imagePath := path.Join(profileImageDir, stored)
		profile.Image = &imagePath
		rec.SetImage(imagePath)
	}

	if err := ac.Users.CreateAccount(ctx, user, profile, rec); err != nil {
		if stored != "" {
			if rmErr := ac.Images.Delete(profileImageDir, stored); rmErr != nil {
				log.WithError(rmErr).Warn("could not remove orphaned profile image")
			}
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			metrics.RecordAuthError("duplicate_email")
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		log.WithError(err).Error("could not create account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
		return
	}

	token, err := ac.Tokens.GenerateToken(ctx, user.ID, string(user.Type))
	if err != nil {
		log.WithError(err).Error("could not issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	metrics.RecordRegistration(string(role))
	log.WithField("user_id", user.ID).WithField("type", role).Info("user registered")

	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user":    user,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	log := middleware.Logger(c)
	ctx := c.Request.Context()

	var input validation.LoginRequest
	if err := c.ShouldBind(&input); err != nil {
		metrics.RecordAuthError("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "422", "error": validation.FromBindError(err, c.Request.Form, &input)})
		return
	}
	if errs := input.Validate(); errs.Any() {
		metrics.RecordAuthError("validation")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "422", "error": errs})
		return
	}

	user, err := ac.Users.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.WithError(err).Error("login lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not look up user"})
		return
	}
	if user == nil || !checkPasswordHash(input.Password, user.Password) {
		metrics.RecordAuthError("invalid_credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid Credentials"})
		return
	}

	token, err := ac.Tokens.GenerateToken(ctx, user.ID, string(user.Type))
	if err != nil {
		log.WithError(err).Error("could not issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	full, err := ac.Users.FindByID(ctx, user.ID)
	if err != nil {
		log.WithError(err).Error("could not load user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
		return
	}

	metrics.RecordLogin()
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"message": "User logged in successfully",
		"user":    full,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please Login with registered email and password"})
		return
	}

	n, err := ac.Tokens.RevokeAll(c.Request.Context(), userID)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("could not revoke tokens")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log out"})
		return
	}

	middleware.Logger(c).WithField("user_id", userID).WithField("revoked", n).Info("user logged out")
	c.JSON(http.StatusOK, gin.H{"message": "Logged Out Successfully"})
}

func (ac *AuthController) Me(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Please Login with registered email and password"})
		return
	}

	user, err := ac.Users.FindByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Please Login with registered email and password"})
			return
		}
		middleware.Logger(c).WithError(err).Error("could not load user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CheckEmail reports whether an account already uses the given email.
func (ac *AuthController) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	exists, err := ac.Users.EmailExists(c.Request.Context(), email)
	if err != nil {
		middleware.Logger(c).WithError(err).Error("email lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not check email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// uploadedFile returns the named multipart file, or nil when the request
// carries none.
func uploadedFile(c *gin.Context, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}

func imageMessage(err error, maxBytes int64) string {
	switch {
	case errors.Is(err, storage.ErrImageTooLarge):
		return fmt.Sprintf("The image may not be greater than %d kilobytes.", maxBytes/1024)
	case errors.Is(err, storage.ErrImageType):
		return "The image must be a file of type: jpeg, png, jpg, gif."
	}
	return "The image failed to upload."
}
