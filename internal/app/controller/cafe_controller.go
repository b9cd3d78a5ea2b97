package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/cafe-backend/internal/app/form"
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/service"
	"github.com/ikkim/cafe-backend/internal/middleware"
)

type CafeController struct {
	cafeService service.CafeService
	mapService  service.MapService
}

func NewCafeController(cafeService service.CafeService, mapService service.MapService) *CafeController {
	return &CafeController{
		cafeService: cafeService,
		mapService:  mapService,
	}
}

// List handles GET /cafes
func (ctrl *CafeController) List(c *gin.Context) {
	cafes, err := ctrl.cafeService.ListCafes()
	if err != nil {
		renderServerError(c, err)
		return
	}
	render(c, http.StatusOK, "cafe_list.html", gin.H{"Title": "Cafes", "Cafes": cafes})
}

// Detail handles GET /cafes/:id
func (ctrl *CafeController) Detail(c *gin.Context) {
	cafe, ok := ctrl.loadCafe(c)
	if !ok {
		return
	}
	render(c, http.StatusOK, "cafe_detail.html", gin.H{
		"Title":  cafe.Name,
		"Cafe":   cafe,
		"MapURL": ctrl.mapService.MapURL(cafe.ID),
	})
}

// AddForm handles GET /cafes/add
func (ctrl *CafeController) AddForm(c *gin.Context) {
	f := form.Cafe.Empty()
	if !ctrl.attachCityChoices(c, f) {
		return
	}
	render(c, http.StatusOK, "cafe_add.html", gin.H{"Title": "Add Cafe", "Form": f})
}

// Add handles POST /cafes/add
func (ctrl *CafeController) Add(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	f, ok := ctrl.parseCafeForm(c)
	if !ok {
		return
	}
	if !f.Validate() {
		render(c, http.StatusOK, "cafe_add.html", gin.H{"Title": "Add Cafe", "Form": f})
		return
	}

	cafe, err := ctrl.cafeService.CreateCafe(c.Request.Context(), cafeInput(f))
	if err != nil {
		log.Error("Failed to add cafe", err, map[string]interface{}{
			"name": f.Get("name"),
		})
		renderServerError(c, err)
		return
	}

	middleware.Flash(c, "success", fmt.Sprintf("Added %s.", cafe.Name))
	middleware.Redirect(c, fmt.Sprintf("/cafes/%d", cafe.ID))
}

// EditForm handles GET /cafes/:id/edit
func (ctrl *CafeController) EditForm(c *gin.Context) {
	cafe, ok := ctrl.loadCafe(c)
	if !ok {
		return
	}

	f := form.Cafe.Empty()
	if !ctrl.attachCityChoices(c, f) {
		return
	}
	f.Set("name", cafe.Name)
	f.Set("description", cafe.Description)
	f.Set("url", cafe.URL)
	f.Set("address", cafe.Address)
	f.Set("city_code", cafe.CityCode)
	if cafe.ImageURL != model.DefaultCafeImage {
		f.Set("image_url", cafe.ImageURL)
	}

	render(c, http.StatusOK, "cafe_edit.html", gin.H{"Title": "Edit Cafe", "Cafe": cafe, "Form": f})
}

// Edit handles POST /cafes/:id/edit
func (ctrl *CafeController) Edit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	cafe, ok := ctrl.loadCafe(c)
	if !ok {
		return
	}

	f, ok := ctrl.parseCafeForm(c)
	if !ok {
		return
	}
	if !f.Validate() {
		render(c, http.StatusOK, "cafe_edit.html", gin.H{"Title": "Edit Cafe", "Cafe": cafe, "Form": f})
		return
	}

	updated, mapFetched, err := ctrl.cafeService.UpdateCafe(c.Request.Context(), cafe.ID, cafeInput(f))
	if err != nil {
		if errors.Is(err, service.ErrCafeNotFound) {
			renderNotFound(c)
			return
		}
		log.Error("Failed to edit cafe", err, map[string]interface{}{
			"cafe_id": cafe.ID,
		})
		renderServerError(c, err)
		return
	}

	log.Info("Cafe edited", map[string]interface{}{
		"cafe_id":     updated.ID,
		"map_fetched": mapFetched,
	})
	middleware.Flash(c, "success", fmt.Sprintf("Edited %s.", updated.Name))
	middleware.Redirect(c, fmt.Sprintf("/cafes/%d", updated.ID))
}

// loadCafe renders the 404 page itself when the id is bad or unknown
func (ctrl *CafeController) loadCafe(c *gin.Context) (*model.Cafe, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		renderNotFound(c)
		return nil, false
	}

	cafe, err := ctrl.cafeService.GetCafe(id)
	if err != nil {
		if errors.Is(err, service.ErrCafeNotFound) {
			renderNotFound(c)
		} else {
			renderServerError(c, err)
		}
		return nil, false
	}
	return cafe, true
}

func (ctrl *CafeController) attachCityChoices(c *gin.Context, f *form.Form) bool {
	cities, err := ctrl.cafeService.ListCityChoices()
	if err != nil {
		renderServerError(c, err)
		return false
	}

	choices := make([]form.Choice, 0, len(cities))
	for _, city := range cities {
		choices = append(choices, form.Choice{Value: city.Code, Label: city.Name})
	}
	f.SetChoices("city_code", choices)
	return true
}

func (ctrl *CafeController) parseCafeForm(c *gin.Context) (*form.Form, bool) {
	if err := c.Request.ParseForm(); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid cafe form", map[string]interface{}{
			"error": err.Error(),
		})
	}
	f := form.Cafe.Parse(c.Request.PostForm)
	if !ctrl.attachCityChoices(c, f) {
		return nil, false
	}
	return f, true
}

func cafeInput(f *form.Form) service.CafeInput {
	return service.CafeInput{
		Name:        f.Get("name"),
		Description: f.Get("description"),
		URL:         f.Get("url"),
		Address:     f.Get("address"),
		CityCode:    f.Get("city_code"),
		ImageURL:    f.Get("image_url"),
	}
}
