package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/metcalfc/docqa/internal/pipeline"
	"github.com/metcalfc/docqa/internal/reader"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// FormatsResponse is the body of GET /api/formats.
type FormatsResponse struct {
	Accepted []string `json:"accepted"`
	Readers  []string `json:"readers"`
}

// IndexResponse is the body of POST /api/index.
type IndexResponse struct {
	Results []pipeline.IndexResult `json:"results"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: s.version})
}

func (s *Server) handleFormats(c echo.Context) error {
	return c.JSON(http.StatusOK, FormatsResponse{
		Accepted: pipeline.AcceptedExtensions,
		Readers:  reader.SupportedFormats(),
	})
}

// handleAsk answers the "question" form field from the "files" parts.
func (s *Server) handleAsk(c echo.Context) error {
	question := strings.TrimSpace(c.FormValue("question"))
	if question == "" {
		return fromPipeline(pipeline.ErrNoQuestion)
	}

	uploads, err := readUploads(c, pipeline.ErrNoFiles)
	if err != nil {
		return err
	}

	ans, err := pipeline.Ask(c.Request().Context(), s.answerer, question, uploads)
	if err != nil {
		return fromPipeline(err)
	}
	return c.JSON(http.StatusOK, ans.Result())
}

// handleIndex builds one abbreviation index per "files" part.
func (s *Server) handleIndex(c echo.Context) error {
	uploads, err := readUploads(c, pipeline.ErrNoArticles)
	if err != nil {
		return err
	}

	results, err := pipeline.Index(c.Request().Context(), uploads)
	if err != nil {
		return fromPipeline(err)
	}
	return c.JSON(http.StatusOK, IndexResponse{Results: pipeline.IndexResults(results)})
}

// readUploads reads every "files" part of a multipart request, reporting none
// as missing. Parts outside the accepted extensions reject the whole request.
func readUploads(c echo.Context, missing error) ([]pipeline.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
			return nil, NewBadRequestError("invalid multipart body", err)
		}
		return nil, fromPipeline(missing)
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, fromPipeline(missing)
	}

	uploads := make([]pipeline.Upload, 0, len(headers))
	for _, fh := range headers {
		if !pipeline.Accepted(fh.Filename) {
			return nil, NewUnsupportedFormatError(fh.Filename)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, NewBadRequestError(fmt.Sprintf("cannot open %s", fh.Filename), err)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, NewBadRequestError(fmt.Sprintf("cannot read %s", fh.Filename), err)
		}
		uploads = append(uploads, pipeline.Upload{Name: fh.Filename, Content: content})
	}
	return uploads, nil
}
