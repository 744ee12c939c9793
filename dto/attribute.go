package dto

import "github.com/alisoliman/recipe-app-api/models"

// AttributeRequest is the payload for creating a tag or ingredient.
// Any owner field sent by the client is ignored.
type AttributeRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// AttributeResponse renders a tag or ingredient
type AttributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewAttributeResponse maps a tag or ingredient row
func NewAttributeResponse[T any, PT models.AttributeModel[T]](item *T) AttributeResponse {
	base := PT(item).Base()
	return AttributeResponse{ID: base.ID, Name: base.Name}
}

// NewAttributeResponses maps a list of tag or ingredient rows
func NewAttributeResponses[T any, PT models.AttributeModel[T]](items []T) []AttributeResponse {
	out := make([]AttributeResponse, 0, len(items))
	for i := range items {
		out = append(out, NewAttributeResponse[T, PT](&items[i]))
	}
	return out
}
