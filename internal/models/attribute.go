package models

// Attribute constrains the per-user name lists that recipes link to.
type Attribute interface {
	Tag | Ingredient
}

// Named is the pointer-side accessor set shared by Tag and Ingredient.
type Named interface {
	GetID() uint
	GetName() string
	SetName(name string)
	SetOwner(userID uint)
	// JoinTable names the recipe association table and this side's column in it.
	JoinTable() (table, column string)
}

func (t *Tag) GetID() uint                 { return t.ID }
func (t *Tag) GetName() string             { return t.Name }
func (t *Tag) SetName(name string)         { t.Name = name }
func (t *Tag) SetOwner(userID uint)        { t.UserID = userID }
func (t *Tag) JoinTable() (string, string) { return "recipe_tags", "tag_id" }

func (i *Ingredient) GetID() uint                 { return i.ID }
func (i *Ingredient) GetName() string             { return i.Name }
func (i *Ingredient) SetName(name string)         { i.Name = name }
func (i *Ingredient) SetOwner(userID uint)        { i.UserID = userID }
func (i *Ingredient) JoinTable() (string, string) { return "recipe_ingredients", "ingredient_id" }
