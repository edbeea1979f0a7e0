package hospital

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/internal/handler"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	hospitalService "github.com/jwalitptl/hospital-api/internal/service/hospital"
	"github.com/jwalitptl/hospital-api/internal/session"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
)

var errNoSession = errors.New("no session attached to request")

type Handler struct {
	service hospitalService.HospitalService
	store   *session.Store
}

func NewHandler(service hospitalService.HospitalService, store *session.Store) *Handler {
	return &Handler{
		service: service,
		store:   store,
	}
}

// RegisterRoutes expects r to run the session middleware.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/hospital", h.GetHospital)
	r.DELETE("/session", h.EndSession)

	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.AddDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/search", h.SearchDoctor)
		doctors.DELETE("", h.RemoveDoctor)
	}

	patients := r.Group("/patients")
	{
		patients.POST("", h.AddPatient)
		patients.GET("", h.ListPatients)
		patients.GET("/count", h.PatientCount)
		patients.DELETE("", h.RemovePatient)
	}
}

func (h *Handler) session(c *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(c)
	if !ok {
		c.Error(apperrors.Internal(errNoSession))
		return nil, false
	}
	return sess, true
}

func (h *Handler) GetHospital(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(model.HospitalInfo{
		Name:      sess.Hospital.Name(),
		SessionID: sess.ID,
	}))
}

func (h *Handler) EndSession(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	h.store.End(sess.ID)
	c.JSON(http.StatusOK, handler.NewMessageResponse("Session ended.", nil))
}

func (h *Handler) AddDoctor(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.BadRequest("invalid doctor data", err))
		return
	}

	doctor := req.ToDoctor()
	h.service.AddDoctor(c.Request.Context(), sess.Hospital, doctor)

	c.JSON(http.StatusCreated, handler.NewMessageResponse(
		fmt.Sprintf("Doctor '%s' added successfully.", doctor.Name), doctor))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	doctors := h.service.ListDoctors(c.Request.Context(), sess.Hospital)
	items := make([]model.ListItem[model.Doctor], 0, len(doctors))
	for _, d := range doctors {
		items = append(items, model.ListItem[model.Doctor]{Entry: d, Summary: d.Summary()})
	}

	message := ""
	if len(items) == 0 {
		message = "No doctors added yet."
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse(message, items))
}

// SearchDoctor answers 200 for both outcomes; a miss is not an error.
func (h *Handler) SearchDoctor(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var query model.SearchDoctorQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(apperrors.BadRequest("doctor name is required", err))
		return
	}

	result := h.service.SearchDoctor(c.Request.Context(), sess.Hospital, query.Name)

	message := "Doctor not found."
	if result.Found {
		message = "Found: " + result.Doctor.Summary()
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse(message, result))
}

// RemoveDoctor acknowledges the same way whether or not anything matched;
// the removed count is in the data.
func (h *Handler) RemoveDoctor(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var query model.RemoveQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(apperrors.BadRequest("invalid query", err))
		return
	}

	result := h.service.RemoveDoctor(c.Request.Context(), sess.Hospital, query.Name)
	c.JSON(http.StatusOK, handler.NewMessageResponse(
		fmt.Sprintf("Doctor '%s' removed (if existed).", query.Name), result))
}

func (h *Handler) AddPatient(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.BadRequest("invalid patient data", err))
		return
	}

	patient := req.ToPatient()
	h.service.AddPatient(c.Request.Context(), sess.Hospital, patient)

	c.JSON(http.StatusCreated, handler.NewMessageResponse(
		fmt.Sprintf("Patient '%s' added successfully.", patient.Name), patient))
}

func (h *Handler) ListPatients(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	patients := h.service.ListPatients(c.Request.Context(), sess.Hospital)
	items := make([]model.ListItem[model.Patient], 0, len(patients))
	for _, p := range patients {
		items = append(items, model.ListItem[model.Patient]{Entry: p, Summary: p.Summary()})
	}

	message := ""
	if len(items) == 0 {
		message = "No patients added yet."
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse(message, items))
}

func (h *Handler) PatientCount(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	count := h.service.PatientCount(c.Request.Context(), sess.Hospital)
	c.JSON(http.StatusOK, handler.NewMessageResponse(
		fmt.Sprintf("Total number of patients: %d", count), model.PatientCount{Count: count}))
}

func (h *Handler) RemovePatient(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var query model.RemoveQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(apperrors.BadRequest("invalid query", err))
		return
	}

	result := h.service.RemovePatient(c.Request.Context(), sess.Hospital, query.Name)
	c.JSON(http.StatusOK, handler.NewMessageResponse(
		fmt.Sprintf("Patient '%s' removed (if existed).", query.Name), result))
}
