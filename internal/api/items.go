package api

import (
	"net/http"

	"shareit/internal/models"
)

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req createItemRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	item, err := s.svc.Items.CreateItem(r.Context(), userID, models.ItemDraft{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req updateItemRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	item, err := s.svc.Items.UpdateItem(r.Context(), userID, itemID, models.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	details, err := s.svc.Items.GetItemDetails(r.Context(), userID, itemID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDetailsResponse(details))
}

func (s *HTTPServer) handleOwnerItems(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	details, err := s.svc.Items.ListOwnerItems(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemDetailsResponses(details))
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Items.SearchItems(r.Context(), r.URL.Query().Get("text"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponses(items))
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := sharerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req createCommentRequest
	if err := s.decode(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	comment, err := s.svc.Items.AddComment(r.Context(), userID, itemID, req.Text)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}
