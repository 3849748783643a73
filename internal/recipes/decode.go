package recipes

import "strings"

// DecodeRecipe builds a typed Recipe from a raw recipe object. Synonym
// fields are resolved first, so raw may be normalised or not. Anything that
// is not an object yields the zero Recipe with empty ingredient and step
// lists.
func DecodeRecipe(raw any) Recipe {
	r, ok := asObject(normalizeRecord(raw))
	if !ok {
		return Recipe{Ingredients: []Ingredient{}, Steps: []Step{}}
	}
	out := Recipe{
		ID:            stringField(r, idKeys...),
		Name:          stringField(r, "name"),
		Description:   stringField(r, "description"),
		Category:      stringField(r, "category"),
		ImageURL:      toString(r["image_url"]),
		PrepTime:      stringField(r, "prep_time"),
		Difficulty:    stringField(r, "difficulty"),
		AverageRating: toFloat(r["average_rating"]),
		CreatedAt:     stringField(r, "created_at"),
	}
	if n, ok := toInt(truthyOr(r, nil, "review_count", "total_reviews")); ok {
		out.ReviewCount = n
	}

	items, _ := asSlice(r["ingredients"])
	out.Ingredients = make([]Ingredient, 0, len(items))
	for _, item := range items {
		m, _ := asObject(item)
		out.Ingredients = append(out.Ingredients, Ingredient{
			ID:       toString(m["id"]),
			Name:     toString(m["name"]),
			Quantity: toString(m["quantity"]),
		})
	}

	items, _ = asSlice(r["steps"])
	out.Steps = make([]Step, 0, len(items))
	for i, item := range items {
		m, _ := asObject(item)
		number, ok := toInt(m["step_number"])
		if !ok {
			number = i + 1
		}
		out.Steps = append(out.Steps, Step{
			ID:          toString(m["id"]),
			Number:      number,
			Instruction: toString(m["instruction"]),
		})
	}
	return out
}

// DecodeRecipeEnvelope types the output of Normalize.
func DecodeRecipeEnvelope(raw any) Envelope[Recipe] {
	m, ok := asObject(Normalize(raw))
	if !ok {
		return Envelope[Recipe]{Data: DecodeRecipe(nil)}
	}
	return Envelope[Recipe]{
		Success: truthy(m["success"]),
		Data:    DecodeRecipe(m["data"]),
		Message: stringField(m, "message"),
	}
}

// DecodeRecipeList types a list response. The recipes may sit in data, in
// data.recipes, in recipes, or the body may be a bare array; pagination is
// read from pagination or meta at either level.
func DecodeRecipeList(raw any) RecipeList {
	out := RecipeList{Recipes: []Recipe{}}
	if items, ok := asSlice(raw); ok {
		out.Success = true
		out.Recipes = decodeRecipes(items)
		out.Pagination = fallbackPagination(len(out.Recipes))
		return out
	}
	m, ok := asObject(raw)
	if !ok {
		return out
	}
	_, wrapped := m["success"]
	out.Success = !wrapped || truthy(m["success"])
	out.Message = stringField(m, "message")

	data, _ := asObject(m["data"])
	items, ok := asSlice(m["data"])
	if !ok {
		items, ok = listField(data, "recipes", "items")
	}
	if !ok {
		items, _ = listField(m, "recipes", "items")
	}
	out.Recipes = decodeRecipes(items)

	page, ok := firstObject(m, "pagination", "meta")
	if !ok {
		page, ok = firstObject(data, "pagination", "meta")
	}
	if ok {
		out.Pagination = decodePagination(page)
	} else {
		out.Pagination = fallbackPagination(len(out.Recipes))
	}
	return out
}

// DecodeFavorites types a favorites list. Each entry either nests the
// recipe under "recipe" or carries the recipe fields itself.
func DecodeFavorites(raw any) []Favorite {
	items := payloadList(raw, "favorites")
	out := make([]Favorite, 0, len(items))
	for _, item := range items {
		m, ok := asObject(item)
		if !ok {
			continue
		}
		fav := Favorite{
			ID:             stringField(m, idKeys...),
			RecipeID:       stringField(m, "recipe_id"),
			UserIdentifier: stringField(m, "user_identifier"),
			CreatedAt:      stringField(m, "created_at"),
		}
		if nested, ok := asObject(m["recipe"]); ok {
			fav.Recipe = DecodeRecipe(nested)
		} else {
			fav.Recipe = DecodeRecipe(m)
			if fav.RecipeID != "" {
				fav.Recipe.ID = fav.RecipeID
			}
		}
		if fav.RecipeID == "" {
			fav.RecipeID = fav.Recipe.ID
		}
		out = append(out, fav)
	}
	return out
}

// DecodeReviews types a review list.
func DecodeReviews(raw any) []Review {
	items := payloadList(raw, "reviews")
	out := make([]Review, 0, len(items))
	for _, item := range items {
		m, ok := asObject(item)
		if !ok {
			continue
		}
		out = append(out, decodeReview(m))
	}
	return out
}

// DecodeReviewEnvelope types a single review response.
func DecodeReviewEnvelope(raw any) Envelope[Review] {
	m, ok := asObject(raw)
	if !ok {
		return Envelope[Review]{}
	}
	review := m
	if data, ok := asObject(m["data"]); ok {
		review = data
	}
	_, wrapped := m["success"]
	return Envelope[Review]{
		Success: !wrapped || truthy(m["success"]),
		Data:    decodeReview(review),
		Message: stringField(m, "message"),
	}
}

// DecodeToggle reads the favorite state out of a toggle response. The flag
// may be named is_favorited, favorited or isFavorited, or be implied by an
// action of "added"/"removed".
func DecodeToggle(raw any) ToggleResult {
	m, ok := asObject(raw)
	if !ok {
		return ToggleResult{}
	}
	data, ok := asObject(m["data"])
	if !ok {
		data = m
	}
	out := ToggleResult{
		RecipeID: stringField(data, "recipe_id"),
		Message:  stringField(m, "message"),
	}
	if v, ok := firstPresent(data, "is_favorited", "favorited", "isFavorited"); ok {
		out.Favorited = truthy(v)
		return out
	}
	switch strings.ToLower(stringField(data, "action")) {
	case "added", "add", "favorited":
		out.Favorited = true
	}
	return out
}

func decodeReview(m map[string]any) Review {
	rating, _ := toInt(m["rating"])
	return Review{
		ID:             stringField(m, idKeys...),
		RecipeID:       stringField(m, "recipe_id"),
		UserIdentifier: stringField(m, "user_identifier"),
		Rating:         rating,
		Comment:        stringField(m, "comment"),
		CreatedAt:      stringField(m, "created_at"),
	}
}

func decodeRecipes(items []any) []Recipe {
	out := make([]Recipe, 0, len(items))
	for _, item := range items {
		if _, ok := asObject(item); !ok {
			continue
		}
		out = append(out, DecodeRecipe(item))
	}
	return out
}

func decodePagination(m map[string]any) Pagination {
	var p Pagination
	p.Page, _ = toInt(m["page"])
	p.Limit, _ = toInt(truthyOr(m, nil, "limit", "per_page"))
	p.Total, _ = toInt(truthyOr(m, nil, "total", "total_items"))
	p.TotalPages, _ = toInt(truthyOr(m, nil, "total_pages", "totalPages"))
	if p.TotalPages == 0 && p.Limit > 0 {
		p.TotalPages = (p.Total + p.Limit - 1) / p.Limit
	}
	return p
}

func fallbackPagination(n int) Pagination {
	p := Pagination{Page: 1, Limit: n, Total: n}
	if n > 0 {
		p.TotalPages = 1
	}
	return p
}

// payloadList finds the list in a response: a bare array, data, data.<key>
// or <key>.
func payloadList(raw any, key string) []any {
	if items, ok := asSlice(raw); ok {
		return items
	}
	m, ok := asObject(raw)
	if !ok {
		return nil
	}
	if items, ok := asSlice(m["data"]); ok {
		return items
	}
	if data, ok := asObject(m["data"]); ok {
		if items, ok := asSlice(data[key]); ok {
			return items
		}
	}
	items, _ := asSlice(m[key])
	return items
}

func listField(m map[string]any, keys ...string) ([]any, bool) {
	for _, k := range keys {
		if items, ok := asSlice(m[k]); ok {
			return items, true
		}
	}
	return nil, false
}

func firstObject(m map[string]any, keys ...string) (map[string]any, bool) {
	for _, k := range keys {
		if obj, ok := asObject(m[k]); ok {
			return obj, true
		}
	}
	return nil, false
}
