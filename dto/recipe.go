package dto

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/alisoliman/recipe-app-api/models"
	"github.com/shopspring/decimal"
)

// RecipeRequest is the body of recipe create, update and partial update.
// Fields are pointers so a missing field can be told apart from a zero value.
type RecipeRequest struct {
	Title       *string          `json:"title" binding:"omitempty,max=255"`
	TimeMinutes *int             `json:"time_minutes" binding:"omitempty,min=0"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link" binding:"omitempty,max=255"`
	Tags        *[]uint          `json:"tags"`
	Ingredients *[]uint          `json:"ingredients"`

	nulls []string // fields sent as an explicit null
}

// UnmarshalJSON decodes the body and records which fields were null
func (r *RecipeRequest) UnmarshalJSON(data []byte) error {
	type plain RecipeRequest
	decoded := plain{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for name, value := range raw {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			decoded.nulls = append(decoded.nulls, name)
		}
	}
	slices.Sort(decoded.nulls)

	*r = RecipeRequest(decoded)
	return nil
}

// IsNull reports whether field was sent as null
func (r RecipeRequest) IsNull(field string) bool {
	return slices.Contains(r.nulls, field)
}

// ImageURLFunc resolves a stored image key to its public URL
type ImageURLFunc func(key string) string

// RecipeSummary is the list representation; relations are rendered as ids
type RecipeSummary struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       string  `json:"price"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
	Image       *string `json:"image"`
}

// RecipeDetail is the single-recipe representation with nested relations
type RecipeDetail struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Link        string              `json:"link"`
	Tags        []AttributeResponse `json:"tags"`
	Ingredients []AttributeResponse `json:"ingredients"`
	Image       *string             `json:"image"`
}

// ImageResponse is returned after an image upload
type ImageResponse struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

// NewRecipeSummary maps a recipe row to its list shape
func NewRecipeSummary(r *models.Recipe, imageURL ImageURLFunc) RecipeSummary {
	return RecipeSummary{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       FormatPrice(r.Price),
		Link:        r.Link,
		Tags:        r.TagIDs(),
		Ingredients: r.IngredientIDs(),
		Image:       imageLocation(r.Image, imageURL),
	}
}

// NewRecipeSummaries maps recipe rows to their list shape
func NewRecipeSummaries(recipes []models.Recipe, imageURL ImageURLFunc) []RecipeSummary {
	out := make([]RecipeSummary, 0, len(recipes))
	for i := range recipes {
		out = append(out, NewRecipeSummary(&recipes[i], imageURL))
	}
	return out
}

// NewRecipeDetail maps a recipe row to its detail shape
func NewRecipeDetail(r *models.Recipe, imageURL ImageURLFunc) RecipeDetail {
	return RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       FormatPrice(r.Price),
		Link:        r.Link,
		Tags:        NewAttributeResponses(r.Tags),
		Ingredients: NewAttributeResponses(r.Ingredients),
		Image:       imageLocation(r.Image, imageURL),
	}
}

// NewImageResponse maps a recipe row to the upload response
func NewImageResponse(r *models.Recipe, imageURL ImageURLFunc) ImageResponse {
	return ImageResponse{ID: r.ID, Image: imageLocation(r.Image, imageURL)}
}

// FormatPrice renders a price with exactly two decimal places
func FormatPrice(p decimal.Decimal) string {
	return p.StringFixed(2)
}

func imageLocation(key string, imageURL ImageURLFunc) *string {
	if key == "" {
		return nil
	}
	if imageURL != nil {
		key = imageURL(key)
	}
	return &key
}
