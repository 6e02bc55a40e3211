package screenings

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB per request

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches screening routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/screenings", h.screen)
	rg.GET("/screenings/:id", h.getResult)
	rg.PATCH("/screenings/:id/feedback", h.recordFeedback)
	rg.GET("/resumes/:id", h.getResume)
}

type screenResponse struct {
	Status     string      `json:"status"`
	Candidates []Candidate `json:"candidates"`
}

type resultResponse struct {
	ID                   string   `json:"id"`
	ResumeID             string   `json:"resumeId"`
	JobDescription       string   `json:"jobDescription"`
	Score                float64  `json:"score"`
	Reasoning            string   `json:"reasoning"`
	HumanFeedbackScore   *float64 `json:"humanFeedbackScore,omitempty"`
	HumanFeedbackComment string   `json:"humanFeedbackComment,omitempty"`
	ScreenedAt           string   `json:"screenedAt"`
}

type feedbackRequest struct {
	Score   *float64 `json:"score"`
	Comment string   `json:"comment"`
}

type resumeResponse struct {
	ID                string   `json:"id"`
	Filename          string   `json:"filename"`
	Name              string   `json:"name,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Skills            []string `json:"skills"`
	ExperienceSignals []string `json:"experienceSignals"`
	EducationSignals  []string `json:"educationSignals"`
	UploadedAt        string   `json:"uploadedAt"`
}

func (h *Handler) screen(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	jobDescription := c.PostForm("job_description")
	if jobDescription == "" {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "job_description form field is required", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid multipart form", nil)
		return
	}

	fileHeaders := form.File["resume_files"]
	files := make([]UploadedFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		if header.Filename == "" {
			continue
		}
		f, err := header.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read uploaded file", nil)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "unable to read uploaded file", nil)
			return
		}
		files = append(files, UploadedFile{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Data:     data,
		})
	}
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "no resume files selected or uploaded", nil)
		return
	}

	candidates, err := h.Svc.ScreenBatch(c.Request.Context(), jobDescription, files)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to screen resumes", nil)
		}
		return
	}

	respond.OK(c, screenResponse{Status: "success", Candidates: candidates})
}

func (h *Handler) getResult(c *gin.Context) {
	result, err := h.Svc.GetResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "screening result not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to load screening result", nil)
		}
		return
	}

	c.Set("screeningId", result.ID)
	respond.OK(c, toResultResponse(result))
}

func (h *Handler) recordFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "score is required", nil)
		return
	}

	result, err := h.Svc.RecordFeedback(c.Request.Context(), c.Param("id"), *req.Score, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "screening result not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to record feedback", nil)
		}
		return
	}

	c.Set("screeningId", result.ID)
	respond.OK(c, toResultResponse(result))
}

func (h *Handler) getResume(c *gin.Context) {
	resume, err := h.Svc.GetResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to load resume", nil)
		}
		return
	}

	respond.OK(c, resumeResponse{
		ID:                resume.ID,
		Filename:          resume.Filename,
		Name:              resume.Name,
		Email:             resume.Email,
		Phone:             resume.Phone,
		Skills:            resume.Skills,
		ExperienceSignals: resume.ExperienceSignals,
		EducationSignals:  resume.EducationSignals,
		UploadedAt:        resume.UploadedAt.UTC().Format(time.RFC3339),
	})
}

func toResultResponse(result Result) resultResponse {
	return resultResponse{
		ID:                   result.ID,
		ResumeID:             result.ResumeID,
		JobDescription:       result.JobDescription,
		Score:                result.Score,
		Reasoning:            result.Reasoning,
		HumanFeedbackScore:   result.HumanFeedbackScore,
		HumanFeedbackComment: result.HumanFeedbackComment,
		ScreenedAt:           result.ScreenedAt.UTC().Format(time.RFC3339),
	}
}
