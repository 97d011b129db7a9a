package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/InstaSync_Go/internal/domain"
)

// MetadataResolver answers attribute lookups for posts
type MetadataResolver interface {
	Lookup(ctx context.Context, id string) (*domain.Post, error)
	All(ctx context.Context, post domain.Post) map[string]string
	Attribute(ctx context.Context, post domain.Post, attribute string) (string, bool)
}

// MediaResponse carries every metadata attribute of a post
type MediaResponse struct {
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

// AttributeResponse carries a single metadata attribute
type AttributeResponse struct {
	ID        string `json:"id"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// HandleGetMedia returns all metadata of a post
func HandleGetMedia(resolver MetadataResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if details := GetValidator().ValidateVar("id", id, tagPostID); details != nil {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequest, Details: details})
			return
		}

		post, err := resolver.Lookup(r.Context(), id)
		if err != nil {
			statusCode, msg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, msg)
			return
		}

		respondJSON(w, http.StatusOK, MediaResponse{
			ID:       post.ID,
			Metadata: resolver.All(r.Context(), *post),
		})
	}
}

// HandleGetMediaAttribute returns one metadata attribute of a post
func HandleGetMediaAttribute(resolver MetadataResolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		attr := chi.URLParam(r, "attribute")

		details := GetValidator().ValidateVar("id", id, tagPostID)
		for k, v := range GetValidator().ValidateVar("attribute", attr, tagAttr) {
			if details == nil {
				details = make(map[string]string)
			}
			details[k] = v
		}
		if details != nil {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidRequest, Details: details})
			return
		}

		post, err := resolver.Lookup(r.Context(), id)
		if err != nil {
			statusCode, msg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, msg)
			return
		}

		value, ok := resolver.Attribute(r.Context(), *post, attr)
		if !ok {
			respondError(w, http.StatusNotFound, ErrMsgUnknownAttr)
			return
		}

		respondJSON(w, http.StatusOK, AttributeResponse{ID: post.ID, Attribute: attr, Value: value})
	}
}
