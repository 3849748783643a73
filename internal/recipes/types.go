package recipes

// Recipe is the canonical recipe record consumed by presentation code.
type Recipe struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Category      string       `json:"category,omitempty"`
	ImageURL      string       `json:"image_url"`
	PrepTime      string       `json:"prep_time"`
	Difficulty    string       `json:"difficulty"`
	AverageRating float64      `json:"average_rating"`
	ReviewCount   int          `json:"review_count,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	Steps         []Step       `json:"steps"`
	CreatedAt     string       `json:"created_at,omitempty"`
}

// Ingredient is one entry of a recipe's ingredient list.
type Ingredient struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Step is one instruction of a recipe, numbered from 1 unless the API says otherwise.
type Step struct {
	ID          string `json:"id,omitempty"`
	Number      int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

// Envelope is the {success, data} wrapper used by the API.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Pagination describes the page returned by a list call.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// RecipeList is a page of recipes.
type RecipeList struct {
	Success    bool       `json:"success"`
	Recipes    []Recipe   `json:"data"`
	Pagination Pagination `json:"pagination"`
	Message    string     `json:"message,omitempty"`
}

// Review is a user's rating of a recipe.
type Review struct {
	ID             string `json:"id"`
	RecipeID       string `json:"recipe_id"`
	UserIdentifier string `json:"user_identifier"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// Favorite links a user identifier to a recipe.
type Favorite struct {
	ID             string `json:"id"`
	RecipeID       string `json:"recipe_id"`
	UserIdentifier string `json:"user_identifier"`
	Recipe         Recipe `json:"recipe"`
	CreatedAt      string `json:"created_at,omitempty"`
}

// ToggleResult reports the favorite state after a toggle.
type ToggleResult struct {
	RecipeID  string
	Favorited bool
	Message   string
}
