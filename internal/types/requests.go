package types

// CreateUserRequest is the body of POST /user/
type CreateUserRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255"`
	Password string `json:"password" form:"password" binding:"required,min=5,max=128"`
	Name     string `json:"name" form:"name" binding:"max=255"`
}

// UpdateUserRequest is the body of PUT/PATCH /user/me/
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,min=5,max=128"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
}

// NameRequest references a tag or ingredient by name, either in its own
// endpoint or nested inside a recipe payload.
type NameRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// AttributeUpdateRequest is the body of PUT/PATCH on a tag or ingredient
type AttributeUpdateRequest struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}

// RecipeRequest is the body of recipe create and update calls. Nil fields were
// not present in the payload; nil Tags/Ingredients leave the relation untouched.
type RecipeRequest struct {
	Title       *string        `json:"title" binding:"omitempty,max=255"`
	Description *string        `json:"description"`
	TimeMinutes *int           `json:"time_minutes"`
	Price       *Price         `json:"price"`
	Link        *string        `json:"link" binding:"omitempty,max=255"`
	Tags        *[]NameRequest `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]NameRequest `json:"ingredients" binding:"omitempty,dive"`
}

// Names flattens a nested name list; nil stays nil.
func Names(refs *[]NameRequest) *[]string {
	if refs == nil {
		return nil
	}
	names := make([]string, 0, len(*refs))
	for _, ref := range *refs {
		names = append(names, ref.Name)
	}
	return &names
}
