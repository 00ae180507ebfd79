package handlers

import (
	"log"
	"net/http"
)

// HomeResponse describes the API entry point
type HomeResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
}

// HomeHandler godoc
// @Summary API root
// @Description Returns the service name and where the API docs live
// @Tags general
// @Produce json
// @Success 200 {object} HomeResponse
// @Router / [get]
func HomeHandler(version string, logger *log.Logger) http.HandlerFunc {
	r := responder{logger: logger}
	return func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		r.sendJSON(w, http.StatusOK, HomeResponse{
			Name:    "RAG Chatbot API",
			Version: version,
			Docs:    "/swagger/index.html",
		})
	}
}
