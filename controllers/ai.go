package controllers

import (
	"net/http"

	"zenith/ai"

	"github.com/gin-gonic/gin"
)

// GET /api/ai/brief/:section
// Cache hit não gera chamada de IA; miss monta contexto e pede um brief novo.
func GetBrief(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	section, ok := ParamSection(c)
	if !ok {
		return
	}
	svc := ai.ServiceInstance(c)
	if svc == nil {
		RespondError(c, "ai service não configurado no contexto", http.StatusInternalServerError)
		return
	}

	brief, err := svc.GetBrief(c.Request.Context(), user, section)
	if err != nil {
		respondAIError(c, err)
		return
	}

	RespondSuccess(c, gin.H{
		"insights":          brief.Insights,
		"example_questions": brief.ExampleQuestions,
	})
}

type ChatRequest struct {
	Message string `json:"message" form:"message"`
}

// POST /api/ai/chat/:section
func Chat(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	section, ok := ParamSection(c)
	if !ok {
		return
	}
	svc := ai.ServiceInstance(c)
	if svc == nil {
		RespondError(c, "ai service não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	reply, err := svc.Chat(c.Request.Context(), user, section, req.Message)
	if err != nil {
		respondAIError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"reply": reply})
}

// POST /api/ai/reset/:section
// Descarta a thread e o brief do par; o assistant da seção permanece.
func ResetAI(c *gin.Context) {
	user, ok := GetUserLogged(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	section, ok := ParamSection(c)
	if !ok {
		return
	}
	svc := ai.ServiceInstance(c)
	if svc == nil {
		RespondError(c, "ai service não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := svc.ResetThread(user.ID, section); err != nil {
		respondAIError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"ok": true})
}
