package api

import (
	"errors"
	"net/http"

	"lfmachado/gym-app/internal/domain"
	"lfmachado/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainingHandler struct {
	trainingService service.TrainingService
}

func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// --- DTOs ---

// The training payload keeps the Portuguese field names the trainer-facing
// clients have always used; the service translates them to storage names.
// service.TrainingInput doubles as the request body.

type CreateTrainingResponse struct {
	ID string `json:"id"`
}

// TrainingResponse adds the per-day exercise buckets to the stored record
// so clients can render the week without re-deriving the grouping.
type TrainingResponse struct {
	domain.Training
	ExercisesByDay map[domain.DayToken][]domain.Exercise `json:"exercisesByDay"`
}

// --- Handler Methods ---

// ListTrainingsByStudent returns the student's trainings, newest start
// date first. Works for soft-deleted students too: orphaned plans stay
// reachable. Only plans created by the calling trainer are returned.
func (h *TrainingHandler) ListTrainingsByStudent(c *gin.Context) {
	studentID, err := primitive.ObjectIDFromHex(c.Param("studentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid student ID format.")
		return
	}

	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	trainings, err := h.trainingService.ListByStudent(c.Request.Context(), trainerID, studentID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, trainings)
}

// GetTraining returns one training with its exercises grouped by weekday.
func (h *TrainingHandler) GetTraining(c *gin.Context) {
	trainingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid training ID format.")
		return
	}

	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	training, err := h.trainingService.GetByID(c.Request.Context(), trainerID, trainingID)
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, TrainingResponse{
		Training:       *training,
		ExercisesByDay: domain.GroupExercisesByDay(training.Exercises),
	})
}

// CreateTraining saves a plan accumulated client-side in a single call.
func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	var input service.TrainingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid training payload: "+err.Error())
		return
	}
	if input.Nome == "" || input.StudentID == "" {
		abortWithError(c, http.StatusBadRequest, "Training requires nome and studentId.")
		return
	}

	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	trainingID, err := h.trainingService.Create(c.Request.Context(), trainerID, input)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, CreateTrainingResponse{ID: trainingID.Hex()})
}

// UpdateTraining edits a plan. A payload without studentId leaves the
// stored owner untouched.
func (h *TrainingHandler) UpdateTraining(c *gin.Context) {
	trainingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid training ID format.")
		return
	}

	var input service.TrainingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid training payload: "+err.Error())
		return
	}

	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	if err := h.trainingService.Update(c.Request.Context(), trainerID, trainingID, input); err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteTraining removes a plan permanently.
func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
	trainingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid training ID format.")
		return
	}

	trainerID, ok := trainerIDFromContext(c)
	if !ok {
		return
	}

	if err := h.trainingService.Delete(c.Request.Context(), trainerID, trainingID); err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
