package recipes

// Field synonyms, checked left to right. The first listed key wins when an
// upstream payload carries more than one of them.
var (
	imageKeys       = []string{"image_url", "image", "imageUrl"}
	idKeys          = []string{"id", "_id"}
	ingredientNames = []string{"name", "nama", "item"}
	ingredientQtys  = []string{"quantity", "qty", "jumlah"}
	stepNumbers     = []string{"step_number", "number", "order"}
	stepTexts       = []string{"instruction", "step", "text", "description", "langkah"}
)

// Normalize converts a raw recipe lookup response into the canonical
// {success, data} shape. Non-object input is returned unchanged.
//
// The recipe is taken from data (under a truthy success), then data alone,
// then recipe, else the object itself. If the input carried a success key
// the result is a shallow copy of it with data replaced; otherwise a new
// {success: true, data: ...} envelope is built. Normalize never fails and
// never mutates raw.
func Normalize(raw any) any {
	envelope, ok := asObject(raw)
	if !ok {
		return raw
	}
	normalized := normalizeRecord(unwrap(envelope))

	if _, wrapped := envelope["success"]; wrapped {
		out := make(map[string]any, len(envelope)+1)
		for k, v := range envelope {
			out[k] = v
		}
		out["data"] = normalized
		return out
	}
	return map[string]any{"success": true, "data": normalized}
}

func unwrap(raw map[string]any) any {
	data := raw["data"]
	switch {
	case truthy(raw["success"]) && truthy(data):
		return data
	case truthy(data):
		return data
	case truthy(raw["recipe"]):
		return raw["recipe"]
	default:
		return raw
	}
}

// normalizeRecord resolves image, ingredient and step synonyms on a single
// recipe object. All other keys are carried over as-is.
func normalizeRecord(v any) any {
	r, ok := asObject(v)
	if !ok {
		return v
	}
	out := make(map[string]any, len(r)+3)
	for k, val := range r {
		out[k] = val
	}
	out["image_url"] = truthyOr(r, "", imageKeys...)

	ingredients := []any{}
	if items, ok := asSlice(r["ingredients"]); ok {
		ingredients = make([]any, 0, len(items))
		for _, item := range items {
			ingredients = append(ingredients, normalizeIngredient(item))
		}
	}
	out["ingredients"] = ingredients

	steps := []any{}
	if items, ok := asSlice(r["steps"]); ok {
		steps = make([]any, 0, len(items))
		for i, item := range items {
			steps = append(steps, normalizeStep(item, i+1))
		}
	}
	out["steps"] = steps

	return out
}

func normalizeIngredient(v any) map[string]any {
	if !truthy(v) {
		return map[string]any{"name": "", "quantity": ""}
	}
	if s, ok := v.(string); ok {
		return map[string]any{"name": s, "quantity": ""}
	}
	// Non-object values fall through with a nil map, so every lookup misses.
	m, _ := asObject(v)
	return map[string]any{
		"id":       truthyOr(m, nil, idKeys...),
		"name":     truthyOr(m, "", ingredientNames...),
		"quantity": truthyOr(m, "", ingredientQtys...),
	}
}

func normalizeStep(v any, position int) map[string]any {
	if !truthy(v) {
		return map[string]any{"id": nil, "step_number": position, "instruction": ""}
	}
	if s, ok := v.(string); ok {
		return map[string]any{"id": nil, "step_number": position, "instruction": s}
	}
	m, _ := asObject(v)
	number, ok := firstPresent(m, stepNumbers...)
	if !ok {
		number = position
	}
	return map[string]any{
		"id":          truthyOr(m, nil, idKeys...),
		"step_number": number,
		"instruction": truthyOr(m, "", stepTexts...),
	}
}
