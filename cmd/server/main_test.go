package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatupopzz/game-soul/internal/catalog"
	"github.com/fatupopzz/game-soul/internal/questionnaire"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "ok", response["status"])
}

func TestQuestionnaireEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	cat := catalog.New()
	builder := questionnaire.NewBuilder(cat)
	router.GET("/api/questionnaire", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"preguntas":                 builder.Questions(),
			"emociones_disponibles":     cat.EmotionTypes(),
			"caracteristicas_evitables": cat.CharacteristicNames(),
			"rangos_duracion":           cat.DurationBands(),
		})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/questionnaire", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Questions []questionnaire.Question `json:"preguntas"`
		Emotions  []string                 `json:"emociones_disponibles"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Questions, 5)
	assert.Len(t, response.Emotions, 9)
}

func TestSubmitEndpoint_InvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/api/questionnaire/submit", func(c *gin.Context) {
		var req struct {
			UserID  string            `json:"user_id" binding:"required"`
			Answers map[string]string `json:"answers" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	})

	// Missing fields
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/questionnaire/submit", bytes.NewBuffer([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendationsEndpoint_TimeRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/api/recommendations", func(c *gin.Context) {
		var req struct {
			Emotion          string `json:"estado_emocional" binding:"required"`
			AvailableMinutes *int   `json:"tiempo_disponible"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.AvailableMinutes != nil && (*req.AvailableMinutes < 5 || *req.AvailableMinutes > 1440) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "tiempo_disponible must be between 5 and 1440 minutes"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"recomendaciones_emocionales": []string{}})
	})

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"missing emotion", `{}`, http.StatusBadRequest},
		{"time too small", `{"estado_emocional":"relajante","tiempo_disponible":1}`, http.StatusBadRequest},
		{"time too large", `{"estado_emocional":"relajante","tiempo_disponible":2000}`, http.StatusBadRequest},
		{"valid", `{"estado_emocional":"relajante","tiempo_disponible":90}`, http.StatusOK},
		{"time omitted", `{"estado_emocional":"relajante"}`, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/recommendations", bytes.NewBuffer([]byte(tc.body)))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestFeedbackEndpoint_InvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/api/feedback", func(c *gin.Context) {
		var req struct {
			UserID       string `json:"user_id" binding:"required"`
			GameID       string `json:"game_id" binding:"required"`
			Satisfaction int    `json:"satisfaction" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/feedback", bytes.NewBuffer([]byte(`{"user_id":"u1"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
