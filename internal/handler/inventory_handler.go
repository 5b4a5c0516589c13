package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"go-dealership/internal/model"
	"go-dealership/internal/service"
	"go-dealership/pkg/apierror"
)

type InventoryHandler struct {
	*Base
}

func NewInventoryHandler(base *Base) *InventoryHandler {
	return &InventoryHandler{Base: base}
}

func (h *InventoryHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home", "Home", nil, nil)
}

// Classification lists the vehicles in one classification. An unknown
// classification id is a plain 404, not an error page with a stack behind it.
func (h *InventoryHandler) Classification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "classificationID"), 10, 64)
	if err != nil || id <= 0 {
		h.NotFound(w, r)
		return
	}

	classification, err := h.inventory.ClassificationByID(r.Context(), id)
	if errors.Is(err, model.ErrClassificationNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	vehicles, err := h.inventory.VehiclesByClassification(r.Context(), id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "classification", classification.Name+" Vehicles", nil, map[string]any{
		"vehicles": vehicles,
	})
}

// Detail shows one vehicle with its reviews and, for logged-in visitors, the
// add-review form.
func (h *InventoryHandler) Detail(reviews *service.ReviewService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
		if err != nil || id <= 0 {
			h.NotFound(w, r)
			return
		}

		vehicle, err := h.inventory.VehicleByID(r.Context(), id)
		if errors.Is(err, model.ErrVehicleNotFound) {
			h.NotFound(w, r)
			return
		}
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		vehicleReviews, err := reviews.VehicleReviews(r.Context(), id)
		if err != nil {
			h.serverError(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, "detail", vehicle.Title(), nil, map[string]any{
			"vehicle":    vehicle,
			"reviews":    vehicleReviews,
			"reviewText": "",
		})
	}
}

func (h *InventoryHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "404 Not Found",
		"Sorry, we could not find the page you were looking for.")
}

// Management is the staff landing page with the classification picker that
// drives the inventory table over the JSON endpoint.
func (h *InventoryHandler) Management(w http.ResponseWriter, r *http.Request) {
	classifications, err := h.inventory.Classifications(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "inv_management", "Vehicle Management", nil, map[string]any{
		"classifications": classifications,
	})
}

func (h *InventoryHandler) ShowAddClassification(w http.ResponseWriter, r *http.Request) {
	h.renderAddClassification(w, r, http.StatusOK, nil, "")
}

func (h *InventoryHandler) AddClassification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	name := r.PostFormValue("classification_name")

	_, err := h.inventory.AddClassification(r.Context(), name)
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		h.renderAddClassification(w, r, http.StatusBadRequest,
			[]string{"Classification names must be a single word of letters and numbers."}, name)
		return
	case errors.Is(err, model.ErrClassificationTaken):
		h.renderAddClassification(w, r, http.StatusBadRequest,
			[]string{"That classification already exists."}, name)
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "The "+name+" classification was successfully added.", "/inv/")
}

func (h *InventoryHandler) DeleteClassification(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "classificationID"), 10, 64)
	if err != nil || id <= 0 {
		h.NotFound(w, r)
		return
	}

	err = h.inventory.DeleteClassification(r.Context(), id)
	switch {
	case errors.Is(err, model.ErrClassificationInUse):
		h.redirectWithFlash(w, r,
			"That classification still has vehicles assigned and cannot be deleted.",
			"/inv/add-classification")
		return
	case errors.Is(err, model.ErrClassificationNotFound):
		h.NotFound(w, r)
		return
	case err != nil:
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "The classification was successfully deleted.", "/inv/")
}

func (h *InventoryHandler) ShowAddVehicle(w http.ResponseWriter, r *http.Request) {
	h.renderVehicleForm(w, r, http.StatusOK, "inv_add_vehicle", "Add New Vehicle", nil, vehicleForm{})
}

func (h *InventoryHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	form := vehicleFormFromRequest(r.PostFormValue)
	vehicle, errs := form.parse()
	if len(errs) > 0 {
		h.renderVehicleForm(w, r, http.StatusBadRequest, "inv_add_vehicle", "Add New Vehicle", errs, form)
		return
	}

	_, err := h.inventory.AddVehicle(r.Context(), vehicle)
	if errors.Is(err, model.ErrClassificationNotFound) {
		h.renderVehicleForm(w, r, http.StatusBadRequest, "inv_add_vehicle", "Add New Vehicle",
			[]string{"Please choose a classification."}, form)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "The "+vehicle.Make+" "+vehicle.Model+" was successfully added.", "/inv/")
}

// ShowEditVehicle pre-fills the edit form from the stored row.
func (h *InventoryHandler) ShowEditVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
	if err != nil || id <= 0 {
		h.NotFound(w, r)
		return
	}

	vehicle, err := h.inventory.VehicleByID(r.Context(), id)
	if errors.Is(err, model.ErrVehicleNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.renderVehicleForm(w, r, http.StatusOK, "inv_edit_vehicle",
		"Edit "+vehicle.Title(), nil, vehicleFormFor(vehicle))
}

func (h *InventoryHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	form := vehicleFormFromRequest(r.PostFormValue)
	vehicle, errs := form.parse()
	if len(errs) == 0 && vehicle.ID <= 0 {
		errs = []string{"Invalid vehicle id."}
	}
	if len(errs) > 0 {
		title := "Edit Vehicle"
		if form.Make != "" || form.Model != "" {
			title = "Edit " + form.Make + " " + form.Model
		}
		h.renderVehicleForm(w, r, http.StatusBadRequest, "inv_edit_vehicle", title, errs, form)
		return
	}

	err := h.inventory.UpdateVehicle(r.Context(), vehicle)
	if errors.Is(err, model.ErrVehicleNotFound) {
		h.NotFound(w, r)
		return
	}
	if errors.Is(err, model.ErrClassificationNotFound) {
		h.renderVehicleForm(w, r, http.StatusBadRequest, "inv_edit_vehicle",
			"Edit "+vehicle.Title(), []string{"Please choose a classification."}, form)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "The "+vehicle.Title()+" was successfully updated.", "/inv/")
}

func (h *InventoryHandler) ShowDeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
	if err != nil || id <= 0 {
		h.NotFound(w, r)
		return
	}

	vehicle, err := h.inventory.VehicleByID(r.Context(), id)
	if errors.Is(err, model.ErrVehicleNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "inv_delete_vehicle", "Delete "+vehicle.Title(), nil, map[string]any{
		"vehicle": vehicle,
	})
}

func (h *InventoryHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad Request", "The submitted form could not be read.")
		return
	}

	id, err := strconv.ParseInt(r.PostFormValue("inv_id"), 10, 64)
	if err != nil || id <= 0 {
		h.NotFound(w, r)
		return
	}

	err = h.inventory.DeleteVehicle(r.Context(), id)
	if errors.Is(err, model.ErrVehicleNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.redirectWithFlash(w, r, "The vehicle was successfully deleted.", "/inv/")
}

// InventoryJSON serves the vehicles of one classification for the management
// screen's table. Staff-only, same as the pages that consume it.
func (h *InventoryHandler) InventoryJSON(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "classificationID"), 10, 64)
	if err != nil || id <= 0 {
		apierror.BadRequest("invalid classification id").Write(w)
		return
	}

	vehicles, err := h.inventory.VehiclesByClassification(r.Context(), id)
	if err != nil {
		slog.Error("list inventory for feed", "classification_id", id, "error", err)
		apierror.Internal("could not load inventory").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(vehicles); err != nil {
		slog.Error("encode inventory feed", "error", err)
	}
}

func (h *InventoryHandler) renderAddClassification(w http.ResponseWriter, r *http.Request, status int, errs []string, name string) {
	classifications, err := h.inventory.Classifications(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, status, "inv_add_classification", "Add New Classification", errs, map[string]any{
		"name":            name,
		"classifications": classifications,
	})
}

func (h *InventoryHandler) renderVehicleForm(w http.ResponseWriter, r *http.Request, status int, page, title string, errs []string, form vehicleForm) {
	classifications, err := h.inventory.Classifications(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, status, page, title, errs, map[string]any{
		"form":            form,
		"classifications": classifications,
	})
}
