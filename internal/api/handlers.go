package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	lcerrors "github.com/matzehuels/layercake/pkg/errors"
	"github.com/matzehuels/layercake/pkg/pipeline"
	rnd "github.com/matzehuels/layercake/pkg/render"
	"github.com/matzehuels/layercake/pkg/sceneio"
	"github.com/matzehuels/layercake/pkg/store"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[rnd.Format]string{
	rnd.FormatPNG:  "image/png",
	rnd.FormatJPEG: "image/jpeg",
	rnd.FormatSVG:  "image/svg+xml",
	rnd.FormatGIF:  "image/gif",
	rnd.FormatRaw:  "application/octet-stream",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// handleRender renders the scene document in the request body.
// Query parameters: format (default png), frames, duration, quality.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.renderError(w, r, lcerrors.Wrap(lcerrors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	defer r.Body.Close()

	doc, err := s.readDocument(r, body)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Document: doc,
		Logger:   s.logger,
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	opts.Formats = []string{format}
	if v := r.URL.Query().Get("frames"); v != "" {
		if opts.Frames, err = strconv.Atoi(v); err != nil {
			s.renderError(w, r, lcerrors.New(lcerrors.ErrCodeInvalidInput, "invalid frames: %q", v))
			return
		}
	}
	if v := r.URL.Query().Get("duration"); v != "" {
		if opts.Duration, err = strconv.ParseFloat(v, 64); err != nil {
			s.renderError(w, r, lcerrors.New(lcerrors.ErrCodeInvalidInput, "invalid duration: %q", v))
			return
		}
	}
	if v := r.URL.Query().Get("quality"); v != "" {
		if opts.Quality, err = strconv.Atoi(v); err != nil {
			s.renderError(w, r, lcerrors.New(lcerrors.ErrCodeInvalidInput, "invalid quality: %q", v))
			return
		}
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	parsed, _ := rnd.ParseFormat(format)
	if ct, ok := contentTypes[parsed]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Write(result.Artifacts[string(parsed)])
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := s.store.List(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	if scenes == nil {
		scenes = []*store.Scene{}
	}
	render.JSON(w, r, scenes)
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	scene, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	render.JSON(w, r, scene)
}

// handleCreateScene validates and stores the scene document in the body.
// An optional "name" query parameter names the scene.
func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.renderError(w, r, lcerrors.Wrap(lcerrors.ErrCodeInvalidInput, err, "read request body"))
		return
	}
	defer r.Body.Close()

	doc, err := s.readDocument(r, body)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	// Store the canonical JSON form regardless of input format.
	canonical, err := sceneio.Marshal(doc)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	scene := &store.Scene{
		Name:     r.URL.Query().Get("name"),
		Document: json.RawMessage(canonical),
	}
	if err := s.store.Save(r.Context(), scene); err != nil {
		s.renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, scene)
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.renderError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readDocument parses the body as YAML when the Content-Type says so,
// JSON otherwise.
func (s *Server) readDocument(r *http.Request, body []byte) (*sceneio.Document, error) {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "yaml") {
		return sceneio.ReadYAML(bytes.NewReader(body))
	}
	return sceneio.ReadJSON(bytes.NewReader(body))
}

// renderError maps an error to an HTTP status and a JSON body.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := lcerrors.HTTPStatus(err)
	if errors.Is(err, store.ErrSceneNotFound) {
		status = http.StatusNotFound
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": lcerrors.UserMessage(err)})
}
