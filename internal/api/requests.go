package api

import (
	"net/http"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const defaultPageSize = 10

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req createRequestRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	created, err := s.svc.Requests.CreateRequest(r.Context(), userID, req.Description)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRequestResponse(created))
}

func (s *HTTPServer) handleOwnRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	requests, err := s.svc.Requests.ListOwnRequests(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestResponses(requests))
}

func (s *HTTPServer) handleOtherRequests(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page, err := pageParams(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	requests, err := s.svc.Requests.ListOtherRequests(r.Context(), userID, page)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestResponses(requests))
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	requestID, err := pathID(r, "requestId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	req, err := s.svc.Requests.GetRequest(r.Context(), userID, requestID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestResponse(req))
}

// pageParams reads from (>= 0, default 0) and size (> 0, default 10).
func pageParams(r *http.Request) (models.Page, error) {
	from, err := queryInt(r, "from", 0)
	if err != nil {
		return models.Page{}, err
	}
	size, err := queryInt(r, "size", defaultPageSize)
	if err != nil {
		return models.Page{}, err
	}
	if from < 0 {
		return models.Page{}, domain.Validationf("from must not be negative")
	}
	if size <= 0 {
		return models.Page{}, domain.Validationf("size must be positive")
	}
	return models.Page{From: from, Size: size}, nil
}
