package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rustyeddy/pricedash/compare"
	"github.com/rustyeddy/pricedash/dashboard"
	"github.com/rustyeddy/pricedash/dataset"
	"github.com/rustyeddy/pricedash/product"
)

// statusFor maps view errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dataset.ErrUnknownMeasure), errors.Is(err, dashboard.ErrUnknownPage):
		return http.StatusNotFound
	case errors.Is(err, product.ErrUnknownMetric):
		return http.StatusBadRequest
	case errors.Is(err, compare.ErrZeroBaseline), errors.Is(err, compare.ErrEmpty):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) renderPage(w http.ResponseWriter, current dashboard.Page, view any, err error) {
	var buf bytes.Buffer
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		s.log.Error("%s view: %v", current.Slug(), err)
		if rerr := s.dash.RenderError(&buf, current, err); rerr != nil {
			http.Error(w, err.Error(), status)
			return
		}
	} else if rerr := s.dash.Render(&buf, view); rerr != nil {
		s.log.Error("render %s: %v", current.Slug(), rerr)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, dashboard.Home, s.dash.HomeView(), nil)
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	m, err := dataset.ParseMeasure(mux.Vars(r)["measure"])
	if err != nil {
		s.renderPage(w, dashboard.Home, nil, err)
		return
	}
	page, _ := dashboard.ParsePage(m.Slug())
	view, err := s.dash.MeasureView(m)
	s.renderPage(w, page, view, err)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	view, err := s.dash.ProductView(r.URL.Query().Get("metric"))
	s.renderPage(w, dashboard.ProductsPage, view, err)
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.logoPath)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func (s *Server) writeAPI(w http.ResponseWriter, v any, err error) {
	if err != nil {
		writeJSON(w, statusFor(err), apiError{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) apiSummary(w http.ResponseWriter, r *http.Request) {
	s.writeAPI(w, s.dash.HomeView(), nil)
}

func (s *Server) apiMeasure(w http.ResponseWriter, r *http.Request) {
	m, err := dataset.ParseMeasure(mux.Vars(r)["measure"])
	if err != nil {
		s.writeAPI(w, nil, err)
		return
	}
	view, err := s.dash.MeasureView(m)
	s.writeAPI(w, view, err)
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	view, err := s.dash.ProductView(r.URL.Query().Get("metric"))
	s.writeAPI(w, view, err)
}
