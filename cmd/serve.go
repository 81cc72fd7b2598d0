package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"beatmark/audio"
	"beatmark/constants"
	"beatmark/db"
	"beatmark/model"
	"beatmark/pipeline"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves beat analysis over HTTP",
	Long:  `Serves beat analysis over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var input model.AnalyzeRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "could not parse request body: "+err.Error())
		return
	}
	if input.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	wave, err := audio.Decode(r.Context(), input.Path)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	res, err := pipeline.Run(r.Context(), wave, pipeline.Options{
		FrameRate:  input.FrameRate,
		SourceName: filepath.Base(input.Path),
		SourcePath: input.Path,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	markers := make([]model.MarkerResult, 0, len(res.Document.Markers))
	for _, m := range res.Document.Markers {
		markers = append(markers, model.MarkerResult{Frame: m.Frame, Label: m.Label})
	}

	response := model.AnalyzeResponse{
		Summary: res.Summary,
		Markers: markers,
	}

	// metadata enrichment is best-effort
	name := filepath.Base(input.Path)
	if metas, err := db.GetTrackMetadatas([]string{name}); err == nil {
		if meta, ok := metas[name]; ok {
			response.Metadata = &meta
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	router.HandleFunc("/health", HandleHealth).Methods("GET")

	handler := cors.Default().Handler(router)
	addr := fmt.Sprintf(":%v", constants.GetServePort())
	fmt.Printf("listening on %v\n", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
