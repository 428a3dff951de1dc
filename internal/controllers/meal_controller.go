package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"meals_on_wheels/internal/events"
	"meals_on_wheels/internal/metrics"
	"meals_on_wheels/internal/middleware"
	"meals_on_wheels/internal/models"
	"meals_on_wheels/internal/repository"
	"meals_on_wheels/internal/storage"
	"meals_on_wheels/internal/validation"
)

// mealImageDir holds meal pictures under the upload root. Meals store only
// the bare file name.
const mealImageDir = "meals"

type MealController struct {
	Meals  repository.MealRepository
	Images *storage.ImageStore
	Events events.Publisher
}

func NewMealController(meals repository.MealRepository, images *storage.ImageStore, publisher events.Publisher) *MealController {
	return &MealController{Meals: meals, Images: images, Events: publisher}
}

func (mc *MealController) Index(c *gin.Context) {
	meals, err := mc.Meals.List(c.Request.Context())
	if err != nil {
		middleware.Logger(c).WithError(err).Error("could not list meals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (mc *MealController) Show(c *gin.Context) {
	meal, ok := mc.findMeal(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

func (mc *MealController) Store(c *gin.Context) {
	log := middleware.Logger(c)

	input, ok := mc.bindMeal(c)
	if !ok {
		return
	}

	meal := &models.Meal{}
	input.Apply(meal)

	var stored string
	if image := uploadedFile(c, "image"); image != nil {
		name, err := mc.Images.Save(image, mealImageDir)
		if err != nil {
			log.WithError(err).Error("could not store meal image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
			return
		}
		stored = name
		meal.Image = &stored
	}

	if err := mc.Meals.Save(c.Request.Context(), meal); err != nil {
		mc.removeImage(c, stored)
		log.WithError(err).Error("could not create meal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create meal"})
		return
	}

	metrics.RecordMealOperation("create")
	mc.publish(c, events.MealCreated, meal)
	c.JSON(http.StatusCreated, gin.H{"meal": meal})
}

func (mc *MealController) Update(c *gin.Context) {
	log := middleware.Logger(c)

	meal, ok := mc.findMeal(c)
	if !ok {
		return
	}
	input, ok := mc.bindMeal(c)
	if !ok {
		return
	}
	input.Apply(meal)

	var previous, stored string
	if image := uploadedFile(c, "image"); image != nil {
		name, err := mc.Images.Save(image, mealImageDir)
		if err != nil {
			log.WithError(err).Error("could not store meal image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image"})
			return
		}
		if meal.Image != nil {
			previous = *meal.Image
		}
		stored = name
		meal.Image = &stored
	}

	if err := mc.Meals.Save(c.Request.Context(), meal); err != nil {
		mc.removeImage(c, stored)
		log.WithError(err).Error("could not update meal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update meal"})
		return
	}
	mc.removeImage(c, previous)

	metrics.RecordMealOperation("update")
	mc.publish(c, events.MealUpdated, meal)
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

func (mc *MealController) Destroy(c *gin.Context) {
	meal, ok := mc.findMeal(c)
	if !ok {
		return
	}

	if err := mc.Meals.Delete(c.Request.Context(), meal); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return
		}
		middleware.Logger(c).WithError(err).Error("could not delete meal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete meal"})
		return
	}
	if meal.Image != nil {
		mc.removeImage(c, *meal.Image)
	}

	metrics.RecordMealOperation("delete")
	mc.publish(c, events.MealDeleted, meal)
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted successfully"})
}

// Import bulk-creates meals from the first sheet of an uploaded workbook.
// Columns: name, ingredients, price, is_frozen, delivery_status,
// allergy_information, nutritional_information, dietary_restrictions.
func (mc *MealController) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to open Excel file"})
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows("Sheet1")
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Excel must have at least one row of data"})
		return
	}

	var meals []models.Meal
	skipped := []gin.H{}
	for i, row := range rows[1:] {
		meal, err := mealFromRow(row)
		if err != nil {
			skipped = append(skipped, gin.H{"row": i + 2, "reason": err.Error()})
			continue
		}
		meals = append(meals, meal)
	}

	if len(meals) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid rows found", "skipped": skipped})
		return
	}

	if err := mc.Meals.CreateBatch(c.Request.Context(), meals); err != nil {
		middleware.Logger(c).WithError(err).Error("could not import meals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not import meals"})
		return
	}

	metrics.RecordMealOperation("import")
	mc.emit(c, events.MealEvent{Event: events.MealImported, Count: len(meals), At: time.Now().UTC()})
	c.JSON(http.StatusOK, gin.H{
		"message": "Meals imported successfully",
		"count":   len(meals),
		"skipped": skipped,
	})
}

func mealFromRow(row []string) (models.Meal, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	optional := func(i int) *string {
		v := cell(i)
		return &v
	}

	if len(row) < 5 {
		return models.Meal{}, errors.New("incomplete row")
	}

	var (
		price               validation.Number
		isFrozen, delivered validation.Boolean
	)
	if err := price.UnmarshalParam(cell(2)); err != nil {
		return models.Meal{}, fmt.Errorf("invalid price %q", cell(2))
	}
	if err := isFrozen.UnmarshalParam(cell(3)); err != nil {
		return models.Meal{}, fmt.Errorf("invalid is_frozen %q", cell(3))
	}
	if err := delivered.UnmarshalParam(cell(4)); err != nil {
		return models.Meal{}, fmt.Errorf("invalid delivery_status %q", cell(4))
	}

	input := validation.MealRequest{
		Name:                   cell(0),
		Ingredients:            cell(1),
		Price:                  &price,
		IsFrozen:               &isFrozen,
		DeliveryStatus:         &delivered,
		AllergyInformation:     optional(5),
		NutritionalInformation: optional(6),
		DietaryRestrictions:    optional(7),
	}
	if errs := input.Validate(); errs.Any() {
		return models.Meal{}, errors.New(errs.First())
	}

	var meal models.Meal
	input.Apply(&meal)
	return meal, nil
}

// findMeal loads the meal named by :id or writes a 404.
func (mc *MealController) findMeal(c *gin.Context) (*models.Meal, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return nil, false
	}

	meal, err := mc.Meals.FindByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
			return nil, false
		}
		middleware.Logger(c).WithError(err).Error("could not load meal")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch meal"})
		return nil, false
	}
	return meal, true
}

// bindMeal parses and validates the request body, writing a 422 on failure.
func (mc *MealController) bindMeal(c *gin.Context) (*validation.MealRequest, bool) {
	var input validation.MealRequest
	if err := c.ShouldBind(&input); err != nil {
		errs := validation.FromBindError(err, c.Request.Form, &input)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": errs.First(), "errors": errs})
		return nil, false
	}

	errs := input.Validate()
	if errs == nil {
		errs = validation.Errors{}
	}
	if image := uploadedFile(c, "image"); image != nil {
		if err := mc.Images.Validate(image); err != nil {
			errs.Add("image", imageMessage(err, mc.Images.MaxBytes))
		}
	}
	if errs.Any() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": errs.First(), "errors": errs})
		return nil, false
	}
	return &input, true
}

func (mc *MealController) removeImage(c *gin.Context, name string) {
	if name == "" {
		return
	}
	if err := mc.Images.Delete(mealImageDir, name); err != nil {
		middleware.Logger(c).WithError(err).WithField("image", name).Warn("could not remove meal image")
	}
}

func (mc *MealController) publish(c *gin.Context, event string, meal *models.Meal) {
	mc.emit(c, events.MealEvent{Event: event, MealID: meal.ID, Name: meal.Name, At: time.Now().UTC()})
}

// emit never fails the request; a broker outage only costs the event.
func (mc *MealController) emit(c *gin.Context, event events.MealEvent) {
	if mc.Events == nil {
		return
	}
	if err := mc.Events.Publish(c.Request.Context(), event); err != nil {
		middleware.Logger(c).WithError(err).WithField("event", event.Event).Warn("could not publish meal event")
	}
}
